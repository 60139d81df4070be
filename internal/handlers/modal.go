package handlers

import "github.com/slack-go/slack"

const (
	callbackCreateTaskModal = "create_task_modal"

	blockDeal  = "deal_block"
	blockTitle = "title_block"
	blockDesc  = "desc_block"
	blockOwner = "owner_block"
	blockDate  = "date_block"
	blockTime  = "time_block"

	actionDealSelect   = "deal_select"
	actionTitleInput   = "title_input"
	actionDescInput    = "desc_input"
	actionOwnerSelect  = "owner_select"
	actionDueDate      = "due_date"
	actionDueTime      = "due_time"
	actionCompleteTask = "complete_task"
)

// newTaskModal declares the six-field task form. The two external selects
// are resolved through the options handlers; min_query_length 0 makes Slack
// ask for options before the user has typed anything.
func newTaskModal() slack.ModalViewRequest {
	minQuery := 0

	dealSelect := slack.NewOptionsSelectBlockElement(slack.OptTypeExternal, plainText("Search deals..."), actionDealSelect)
	dealSelect.MinQueryLength = &minQuery

	ownerSelect := slack.NewOptionsSelectBlockElement(slack.OptTypeExternal, plainText("Search owners..."), actionOwnerSelect)
	ownerSelect.MinQueryLength = &minQuery

	descInput := slack.NewPlainTextInputBlockElement(nil, actionDescInput)
	descInput.Multiline = true

	descBlock := slack.NewInputBlock(blockDesc, plainText("Description"), nil, descInput)
	descBlock.Optional = true

	ownerBlock := slack.NewInputBlock(blockOwner, plainText("Assignee (HubSpot Owner)"), nil, ownerSelect)
	ownerBlock.Optional = true

	timeBlock := slack.NewInputBlock(blockTime, plainText("Due time (optional)"), nil, slack.NewTimePickerBlockElement(actionDueTime))
	timeBlock.Optional = true

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: callbackCreateTaskModal,
		Title:      plainText("New HubSpot Task"),
		Submit:     plainText("Create"),
		Close:      plainText("Cancel"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			slack.NewInputBlock(blockDeal, plainText("Deal"), nil, dealSelect),
			slack.NewInputBlock(blockTitle, plainText("Task title"), nil, slack.NewPlainTextInputBlockElement(nil, actionTitleInput)),
			descBlock,
			ownerBlock,
			slack.NewInputBlock(blockDate, plainText("Due date"), nil, slack.NewDatePickerBlockElement(actionDueDate)),
			timeBlock,
		}},
	}
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}
