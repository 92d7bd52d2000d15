package telegram

import (
	"context"
	"fmt"
	"net/http"

	"github.com/KNICEX/price-alert-agent/internal/service/notification"
	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.telegram.org"

type Service struct {
	cli     *resty.Client
	baseURL string
	token   string
	chatId  int64
}

type Option func(svc *Service)

func WithBaseURL(url string) Option {
	return func(svc *Service) {
		svc.baseURL = url
	}
}

func NewService(token string, chatId int64, opts ...Option) notification.Notifier {
	svc := &Service{
		cli:     resty.New(),
		baseURL: defaultBaseURL,
		token:   token,
		chatId:  chatId,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *Service) Send(ctx context.Context, text string) error {
	var parsed struct {
		Ok          bool   `json:"ok"`
		Description string `json:"description"`
	}
	resp, err := svc.cli.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"chat_id": svc.chatId,
			"text":    text,
		}).
		SetResult(&parsed).
		Post(fmt.Sprintf("%s/bot%s/sendMessage", svc.baseURL, svc.token))
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK || !parsed.Ok {
		return fmt.Errorf("telegram sendMessage rejected: status %d, %s", resp.StatusCode(), parsed.Description)
	}
	return nil
}

// ResolveChatId looks up the chat id of the most recent message sent to the
// bot, so the destination does not have to be configured by hand.
func ResolveChatId(ctx context.Context, token string) (int64, error) {
	return resolveChatId(ctx, resty.New(), defaultBaseURL, token)
}

func resolveChatId(ctx context.Context, cli *resty.Client, baseURL, token string) (int64, error) {
	var parsed struct {
		Ok     bool `json:"ok"`
		Result []struct {
			Message struct {
				From struct {
					Id int64 `json:"id"`
				} `json:"from"`
			} `json:"message"`
		} `json:"result"`
	}
	resp, err := cli.R().
		SetContext(ctx).
		SetResult(&parsed).
		Get(fmt.Sprintf("%s/bot%s/getUpdates", baseURL, token))
	if err != nil {
		return 0, err
	}
	if resp.StatusCode() != http.StatusOK || !parsed.Ok {
		return 0, fmt.Errorf("telegram getUpdates rejected: status %d", resp.StatusCode())
	}
	if len(parsed.Result) == 0 {
		return 0, fmt.Errorf("no updates for bot, send the bot a message first")
	}
	return parsed.Result[0].Message.From.Id, nil
}
