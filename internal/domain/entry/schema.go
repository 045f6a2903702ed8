package entry

// FieldKind distinguishes how a field's value is stored and displayed.
type FieldKind int

const (
	KindText FieldKind = iota
	KindImages
	KindTags
)

// FieldSpec describes one field of an entry type: its key in the data
// payload, the label shown in generated output, and the value kind.
type FieldSpec struct {
	Key   string
	Label string
	Kind  FieldKind
}

var schemas = map[Type][]FieldSpec{
	TypeDaily: {
		{Key: "date", Label: "Date", Kind: KindText},
		{Key: "work_type", Label: "Work style", Kind: KindText},
		{Key: "arrival_time", Label: "Arrival", Kind: KindText},
		{Key: "departure_time", Label: "Departure", Kind: KindText},
		{Key: "name", Label: "Name", Kind: KindText},
		{Key: "today_goal", Label: "Today's goal", Kind: KindText},
		{Key: "today_todo", Label: "Today's TODO", Kind: KindText},
		{Key: "today_completed", Label: "Completed today", Kind: KindText},
		{Key: "today_completed_images", Label: "Completed today (images)", Kind: KindImages},
		{Key: "today_incomplete_reason", Label: "Not completed and why", Kind: KindText},
		{Key: "tomorrow_todo", Label: "Tomorrow's TODO", Kind: KindText},
		{Key: "tags", Label: "Tags", Kind: KindTags},
	},
	TypeExperiment: {
		{Key: "experiment_date", Label: "Experiment date", Kind: KindText},
		{Key: "purpose", Label: "Purpose", Kind: KindText},
		{Key: "hypothesis", Label: "Hypothesis", Kind: KindText},
		{Key: "method", Label: "Method", Kind: KindText},
		{Key: "evaluation", Label: "Evaluation method", Kind: KindText},
		{Key: "results", Label: "Results", Kind: KindText},
		{Key: "results_images", Label: "Results (images)", Kind: KindImages},
		{Key: "assessment", Label: "Assessment", Kind: KindText},
		{Key: "consideration", Label: "Consideration", Kind: KindText},
		{Key: "code", Label: "Code", Kind: KindText},
		{Key: "tips", Label: "Tips", Kind: KindText},
		{Key: "tags", Label: "Tags", Kind: KindTags},
	},
	TypeParticipation: {
		{Key: "content", Label: "Content", Kind: KindText},
		{Key: "images", Label: "Images", Kind: KindImages},
		{Key: "tags", Label: "Tags", Kind: KindTags},
	},
	TypeResearchMeeting: {
		{Key: "meeting_title", Label: "Meeting title", Kind: KindText},
		{Key: "current_status", Label: "Current status", Kind: KindText},
		{Key: "weekly_activities_thoughts", Label: "This week's work and thoughts", Kind: KindText},
		{Key: "weekly_activity_images", Label: "This week's images", Kind: KindImages},
		{Key: "advice_needed", Label: "Advice needed", Kind: KindText},
		{Key: "next_week_tasks", Label: "Next week's tasks", Kind: KindText},
		{Key: "tags", Label: "Tags", Kind: KindTags},
	},
}

// Schema returns the ordered field list for an entry type.
func Schema(t Type) []FieldSpec {
	return schemas[t]
}

// DisplayName returns the human heading used for pages of this type.
func (t Type) DisplayName() string {
	switch t {
	case TypeDaily:
		return "Daily Log"
	case TypeExperiment:
		return "Experiment Plan"
	case TypeParticipation:
		return "Participation Report"
	case TypeResearchMeeting:
		return "Research Meeting Report"
	}
	return "Entry"
}

// ImageListKeys is the fixed set of payload keys that hold image filename
// lists across all entry types. Digesting sorts these lists so the hash does
// not depend on upload order.
var ImageListKeys = map[string]bool{
	"today_completed_images": true,
	"results_images":         true,
	"images":                 true,
	"weekly_activity_images": true,
}
