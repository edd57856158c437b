package chat

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Reply es la respuesta del asistente.
type Reply struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Source es un fragmento de documento usado para la respuesta.
type Source struct {
	Content string    `json:"content"`
	Source  string    `json:"source"`
	Page    PageLabel `json:"page"`
}

// PageLabel acepta número o string ("N/A").
type PageLabel string

func (p *PageLabel) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PageLabel(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = PageLabel(n.String())
	return nil
}
