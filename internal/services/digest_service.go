// internal/services/digest_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/ckaracaev/slack-sales-task/internal/models"
)

// MessagePoster is the slice of the Slack client the digest needs.
type MessagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// DigestService posts the daily summary of due-today and overdue tasks.
// Any failure along the way is logged and the run is skipped for the day;
// there is no retry and no partial message.
type DigestService interface {
	Run(ctx context.Context)
}

type digestService struct {
	crm       HubSpotService
	slack     MessagePoster
	channelID string
	loc       *time.Location
	now       func() time.Time
}

// NewDigestService creates a digest bound to a channel and a timezone. The
// location decides both where "today" starts and which day a task belongs to.
func NewDigestService(crm HubSpotService, poster MessagePoster, channelID string, loc *time.Location) DigestService {
	return &digestService{
		crm:       crm,
		slack:     poster,
		channelID: channelID,
		loc:       loc,
		now:       time.Now,
	}
}

func (d *digestService) Run(ctx context.Context) {
	now := d.now().In(d.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, d.loc)
	end := start.Add(24 * time.Hour)
	startMs := strconv.FormatInt(start.UnixMilli(), 10)
	endMs := strconv.FormatInt(end.UnixMilli(), 10)

	dueToday, err := d.crm.SearchTasks(ctx, []models.PropertyFilter{
		{PropertyName: "hs_task_status", Operator: "NEQ", Value: string(models.StatusCompleted)},
		{PropertyName: "hs_timestamp", Operator: "GTE", Value: startMs},
		{PropertyName: "hs_timestamp", Operator: "LT", Value: endMs},
	})
	if err != nil {
		log.Printf("[digest][err] due-today search: %v", err)
		return
	}

	overdue, err := d.crm.SearchTasks(ctx, []models.PropertyFilter{
		{PropertyName: "hs_task_status", Operator: "NEQ", Value: string(models.StatusCompleted)},
		{PropertyName: "hs_timestamp", Operator: "LT", Value: startMs},
	})
	if err != nil {
		log.Printf("[digest][err] overdue search: %v", err)
		return
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Daily Task Digest", false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, "*Due Today*\n"+formatTaskList(dueToday), false, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, "*Overdue*\n"+formatTaskList(overdue), false, false), nil, nil),
	}

	if _, _, err := d.slack.PostMessageContext(ctx, d.channelID,
		slack.MsgOptionText("Daily Task Digest", false),
		slack.MsgOptionBlocks(blocks...),
	); err != nil {
		log.Printf("[digest][err] post: %v", err)
		return
	}
	log.Printf("[digest][ok] due_today=%d overdue=%d", len(dueToday), len(overdue))
}

// formatTaskList renders one bullet per task subject, or an em-dash when the
// set is empty.
func formatTaskList(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "—"
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		subject := t.Properties.Subject
		if subject == "" {
			subject = fmt.Sprintf("(Task %s)", t.ID)
		}
		lines = append(lines, "• "+subject)
	}
	return strings.Join(lines, "\n")
}
