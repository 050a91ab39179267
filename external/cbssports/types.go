package cbssports

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// playerListEnvelope is the fantasy players/list response.
type playerListEnvelope struct {
	URI           string         `json:"uri"`
	StatusCode    int            `json:"statusCode"`
	URIAlias      string         `json:"uriAlias"`
	StatusMessage string         `json:"statusMessage"`
	Body          playerListBody `json:"body"`
}

type playerListBody struct {
	Players []feedPlayer `json:"players"`
}

type feedPlayer struct {
	ID        flexString `json:"id"`
	FirstName string     `json:"firstname"`
	LastName  string     `json:"lastname"`
	FullName  string     `json:"fullname"`
	Position  string     `json:"position"`
	Age       flexInt    `json:"age"`
	ProTeam   string     `json:"pro_team"`
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*s = ""
		return nil
	}
	if raw[0] == '"' {
		var v string
		if err := sonic.Unmarshal(raw, &v); err != nil {
			return err
		}
		*s = flexString(strings.TrimSpace(v))
		return nil
	}
	*s = flexString(string(raw))
	return nil
}

// flexInt accepts a JSON number or numeric string. Anything else reads as
// zero, which the domain treats as an unknown age.
type flexInt int

func (n *flexInt) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*n = 0
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		var v string
		if err := sonic.Unmarshal(raw, &v); err != nil {
			return err
		}
		text = strings.TrimSpace(v)
	}
	if parsed, err := strconv.Atoi(text); err == nil {
		*n = flexInt(parsed)
		return nil
	}
	if parsed, err := strconv.ParseFloat(text, 64); err == nil {
		*n = flexInt(int(parsed))
		return nil
	}
	*n = 0
	return nil
}
