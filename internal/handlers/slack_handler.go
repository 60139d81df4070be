package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"

	"github.com/ckaracaev/slack-sales-task/internal/models"
	"github.com/ckaracaev/slack-sales-task/internal/services"
)

const createFailureText = "Failed to create HubSpot task. Please check logs and tokens."

// SlackClient is the slice of the Slack Web API the handler uses. The
// concrete *slack.Client satisfies it; tests substitute a fake.
type SlackClient interface {
	OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
}

// SlackHandler multiplexes Slack's delivery contract: slash command, option
// search, view submission and button click. Every event is acknowledged
// before any CRM call starts; slow work runs out of band.
type SlackHandler struct {
	crm   services.HubSpotService
	slack SlackClient
}

func NewSlackHandler(crm services.HubSpotService, slackClient SlackClient) *SlackHandler {
	return &SlackHandler{crm: crm, slack: slackClient}
}

// POST /slack/commands
func (h *SlackHandler) Command(c *gin.Context) {
	cmd, err := slack.SlashCommandParse(c.Request)
	if err != nil {
		log.Printf("[slack][command][err] parse: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}
	log.Printf("[slack][command] %s user=%s", cmd.Command, cmd.UserID)

	// Ack inside Slack's timeout window; the modal opens via trigger_id.
	c.Status(http.StatusOK)
	go h.openTaskModal(cmd.TriggerID)
}

func (h *SlackHandler) openTaskModal(triggerID string) {
	if _, err := h.slack.OpenViewContext(context.Background(), triggerID, newTaskModal()); err != nil {
		log.Printf("[slack][command][err] open view: %v", err)
	}
}

// POST /slack/events
//
// Option searches are answered synchronously because the option list is the
// acknowledgment body. Submissions and button clicks are acked empty and
// processed in the background.
func (h *SlackHandler) Interaction(c *gin.Context) {
	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(c.PostForm("payload")), &callback); err != nil {
		log.Printf("[slack][interaction][err] decode payload: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	switch callback.Type {
	case slack.InteractionTypeBlockSuggestion:
		c.JSON(http.StatusOK, h.suggestOptions(c.Request.Context(), &callback))
	case slack.InteractionTypeViewSubmission:
		c.Status(http.StatusOK)
		if callback.View.CallbackID == callbackCreateTaskModal {
			go h.handleSubmission(context.Background(), &callback)
		}
	case slack.InteractionTypeBlockActions:
		c.Status(http.StatusOK)
		go h.handleBlockActions(context.Background(), &callback)
	default:
		c.Status(http.StatusOK)
	}
}

func (h *SlackHandler) suggestOptions(ctx context.Context, callback *slack.InteractionCallback) slack.OptionsResponse {
	switch callback.ActionID {
	case actionDealSelect:
		return dealOptions(h.crm.SearchDeals(ctx, callback.Value))
	case actionOwnerSelect:
		return ownerOptions(h.crm.ListOwners(ctx, callback.Value))
	}
	log.Printf("[slack][options][warn] unknown action_id=%q", callback.ActionID)
	return slack.OptionsResponse{Options: []*slack.OptionBlockObject{}}
}

func (h *SlackHandler) handleSubmission(ctx context.Context, callback *slack.InteractionCallback) {
	values := callback.View.State.Values

	dealID := values[blockDeal][actionDealSelect].SelectedOption.Value
	title := values[blockTitle][actionTitleInput].Value
	desc := values[blockDesc][actionDescInput].Value
	ownerID := values[blockOwner][actionOwnerSelect].SelectedOption.Value
	dueDate := values[blockDate][actionDueDate].SelectedDate
	dueTime := values[blockTime][actionDueTime].SelectedTime

	taskID, err := h.crm.CreateTask(ctx, models.TaskInput{
		Title:       title,
		Description: desc,
		DueISO:      combineDue(dueDate, dueTime),
		OwnerID:     ownerID,
		DealID:      dealID,
	})
	if err != nil {
		log.Printf("[slack][submit][err] create task: %v", err)
		if _, _, err := h.slack.PostMessageContext(ctx, callback.User.ID,
			slack.MsgOptionText(createFailureText, false),
		); err != nil {
			log.Printf("[slack][submit][err] post failure notice: %v", err)
		}
		return
	}
	log.Printf("[slack][submit][ok] task=%s deal=%s title=%q", taskID, dealID, title)

	if _, _, err := h.slack.PostMessageContext(ctx, callback.User.ID,
		slack.MsgOptionText("Task created: "+title, false),
		slack.MsgOptionBlocks(confirmationBlocks(taskID, title, desc, dealID, dueDate, dueTime)...),
	); err != nil {
		log.Printf("[slack][submit][err] post confirmation: %v", err)
	}
}

// confirmationBlocks builds the DM sent after a successful create: the task
// summary plus a completion button carrying the task id and a HubSpot link.
func confirmationBlocks(taskID, title, desc, dealID, dueDate, dueTime string) []slack.Block {
	due := dueDate
	if due == "" {
		due = "—"
	}
	text := fmt.Sprintf("*%s*\nLinked deal: `%s`\n%s\nDue: %s %s", title, dealID, desc, due, dueTime)

	value, _ := json.Marshal(models.CompletionPayload{HsTaskID: taskID})
	completeBtn := slack.NewButtonBlockElement(actionCompleteTask, string(value), plainText("✅ Mark Complete"))
	viewBtn := slack.NewButtonBlockElement("", "", plainText("View in HubSpot"))
	viewBtn.URL = "https://app.hubspot.com/contacts/tasks/" + taskID

	return []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
		slack.NewActionBlock("", completeBtn, viewBtn),
	}
}

func (h *SlackHandler) handleBlockActions(ctx context.Context, callback *slack.InteractionCallback) {
	for _, action := range callback.ActionCallback.BlockActions {
		if action.ActionID == actionCompleteTask {
			h.completeTask(ctx, callback, action.Value)
		}
	}
}

func (h *SlackHandler) completeTask(ctx context.Context, callback *slack.InteractionCallback, value string) {
	var payload models.CompletionPayload
	if err := json.Unmarshal([]byte(value), &payload); err != nil {
		log.Printf("[slack][complete][err] decode payload %q: %v", value, err)
		return
	}

	// Failures here stay in the log; the user gets no notice and the message
	// keeps its button.
	if err := h.crm.CompleteTask(ctx, payload.HsTaskID); err != nil {
		log.Printf("[slack][complete][err] task=%s: %v", payload.HsTaskID, err)
		return
	}

	if _, _, _, err := h.slack.UpdateMessageContext(ctx, callback.Channel.ID, callback.Message.Timestamp,
		slack.MsgOptionText("Task completed", false),
		slack.MsgOptionBlocks(
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, "✅ *Completed*", false, false), nil, nil),
		),
	); err != nil {
		log.Printf("[slack][complete][err] update message: %v", err)
		return
	}
	log.Printf("[slack][complete][ok] task=%s", payload.HsTaskID)
}
