package response

import (
	"log/slog"

	dg "github.com/bwmarrin/discordgo"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/utils"
	"github.com/graxinc/errutil"
)

// emptyValue stands in for blank field values, which the gateway rejects.
const emptyValue = "\u200b"

// Sender is the part of the gateway session a Responder writes to.
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *dg.MessageEmbed, options ...dg.RequestOption) (*dg.Message, error)
	ChannelTyping(channelID string, options ...dg.RequestOption) error
}

type Responder struct {
	s Sender
	l *slog.Logger
}

func NewResponder(s Sender, l *slog.Logger) *Responder {
	return &Responder{s: s, l: l}
}

func NewSessionResponder(s *dg.Session, l *slog.Logger) *Responder {
	return NewResponder(s, l)
}

func (r *Responder) Typing(channelID string) {
	if err := r.s.ChannelTyping(channelID); err != nil {
		r.l.Debug("error sending typing indicator", "channel", channelID, "error", err)
	}
}

func (r *Responder) Send(channelID string, res *display.Response) error {
	if _, err := r.s.ChannelMessageSendEmbed(channelID, Embed(res)); err != nil {
		return errutil.With(err)
	}
	return nil
}

func (r *Responder) Fail(channelID string, f utils.Failure) error {
	r.l.Warn("handler failure", "type", f.Type, "message", f.Message, "data", f.Data)
	return r.Send(channelID, FailureResponse(f))
}

// FailureResponse renders a failure as a red card. Rejected invocations get
// the command error title, and bad input may carry a usage example.
func FailureResponse(f utils.Failure) *display.Response {
	res := &display.Response{
		Title:       "실행 오류",
		Color:       display.ColorRed,
		Description: f.Message,
		Footer:      f.Footer,
	}

	switch f.Type {
	case utils.ErrBadInput:
		if f.Usage != "" {
			res.Title = "명령어 오류"
			res.AddField("사용 예시", f.Usage, false)
		}
	case utils.ErrRateLimited, utils.ErrNotAllowed:
		res.Title = "명령어 오류"
	case utils.ErrInternal:
		if res.Description == "" {
			res.Description = "명령어를 처리하는 중 오류가 발생했습니다."
		}
	}

	return res
}

func Embed(res *display.Response) *dg.MessageEmbed {
	e := &dg.MessageEmbed{
		Title:       res.Title,
		Description: res.Description,
		Color:       int(res.Color),
	}

	if res.Author != nil {
		e.Author = &dg.MessageEmbedAuthor{Name: res.Author.Name, IconURL: res.Author.IconURL}
	}
	if res.Thumbnail != "" {
		e.Thumbnail = &dg.MessageEmbedThumbnail{URL: res.Thumbnail}
	}
	if res.Image != "" {
		e.Image = &dg.MessageEmbedImage{URL: res.Image}
	}
	if res.Footer != "" {
		e.Footer = &dg.MessageEmbedFooter{Text: res.Footer}
	}

	for _, f := range res.Fields {
		value := f.Value
		if value == "" {
			value = emptyValue
		}
		e.Fields = append(e.Fields, &dg.MessageEmbedField{Name: f.Name, Value: value, Inline: f.Inline})
	}

	return e
}
