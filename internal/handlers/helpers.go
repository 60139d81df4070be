package handlers

import (
	"strings"

	"github.com/slack-go/slack"

	"github.com/ckaracaev/slack-sales-task/internal/models"
)

// combineDue merges the date and time picker values into a local wall-clock
// timestamp string. A date without a time defaults to 17:00; no date means
// no due timestamp at all.
func combineDue(dueDate, dueTime string) string {
	if dueDate == "" {
		return ""
	}
	if dueTime == "" {
		return dueDate + "T17:00:00"
	}
	return dueDate + "T" + dueTime + ":00"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// dealOptions projects deal records into the select's option list. Labels
// cap at Slack's 75-char option text limit.
func dealOptions(deals []models.Deal) slack.OptionsResponse {
	opts := make([]*slack.OptionBlockObject, 0, len(deals))
	for _, d := range deals {
		label := d.Properties.DealName
		if label == "" {
			label = "Deal " + d.ID
		}
		opts = append(opts, slack.NewOptionBlockObject(d.ID, plainText(truncate(label, 75)), nil))
	}
	return slack.OptionsResponse{Options: opts}
}

func ownerOptions(owners []models.Owner) slack.OptionsResponse {
	opts := make([]*slack.OptionBlockObject, 0, len(owners))
	for _, o := range owners {
		label := strings.TrimSpace(o.FirstName + " " + o.LastName)
		if label == "" {
			label = o.Email
		}
		opts = append(opts, slack.NewOptionBlockObject(o.ID, plainText(label), nil))
	}
	return slack.OptionsResponse{Options: opts}
}
