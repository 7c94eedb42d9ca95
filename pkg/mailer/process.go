package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/go-devconnector/pkg/mailer/templates"
)

// ErrBadJob marks a message that can never be delivered and must not be requeued.
var ErrBadJob = errors.New("bad email job")

// Process decodes one queued job, renders it and hands it to the sender.
// Errors wrapping ErrBadJob are permanent; anything else is worth a retry.
func Process(ctx context.Context, body []byte, sender Sender, defaults templates.Defaults) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrBadJob, err)
	}
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("%w: empty recipient", ErrBadJob)
	}
	subject, text, html, err := job.Resolve(defaults)
	if err != nil {
		return fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
	}
	if err := sender.Send(ctx, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send to %s: %w", job.To, err)
	}
	return nil
}
