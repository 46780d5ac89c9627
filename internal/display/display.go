package display

import "fmt"

type Color int

const (
	ColorBlue Color = 0x0070DE
	ColorRed  Color = 0xFF0000
)

const iconBase = "https://wow.zamimg.com/images/wow/icons/large"

// Icon returns the thumbnail URL of a game icon by its file name.
func Icon(name string) string {
	return fmt.Sprintf("%s/%s.jpg", iconBase, name)
}

type Author struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Response is the platform-neutral card every command produces. The gateway
// renders it into the chat platform's native message format.
type Response struct {
	Title       string  `json:"title,omitempty"`
	Author      *Author `json:"author,omitempty"`
	Color       Color   `json:"color"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Image       string  `json:"image,omitempty"`
	Footer      string  `json:"footer,omitempty"`
}

func New(title, description string) *Response {
	return &Response{Title: title, Description: description, Color: ColorBlue}
}

func (r *Response) AddField(name, value string, inline bool) *Response {
	r.Fields = append(r.Fields, Field{Name: name, Value: value, Inline: inline})
	return r
}
