package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imroc/req/v3"
)

// JSON posts body as JSON and treats any 4xx/5xx as an error carrying the
// response text.
func JSON(ctx context.Context, label, url string, timeout time.Duration, body any) error {
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("%s url is empty", label)
	}
	client := req.C()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	resp, err := client.R().
		SetContext(ctx).
		SetBodyJsonMarshal(body).
		Post(url)
	if err != nil {
		return err
	}
	if resp.IsErrorState() {
		return fmt.Errorf("%s status %d: %s", label, resp.StatusCode, strings.TrimSpace(resp.String()))
	}
	return nil
}
