package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entry"
)

// EntryOptions are the fields of a new entry other than its title and day.
type EntryOptions struct {
	Description string
	Preview     string
	Slot        string
	Type        string
	Platforms   []string
	Status      string
	Priority    string
	Engagement  float64
	Recurring   string
	Parent      string
	Auto        bool
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "", "Longer description.")
	cmd.Flags().StringVar(&o.Preview, "preview", "", "Preview of the content body.")
	cmd.Flags().StringVarP(&o.Slot, "slot", "t", entry.DefaultTimeSlot, "Time slot as HH:MM.")
	cmd.Flags().StringVar(&o.Type, "type", string(entry.Post), "Content type.")
	cmd.Flags().StringSliceVarP(&o.Platforms, "platform", "p", nil,
		"Target platform, repeat or comma separate for several. Defaults to the configured platform.")
	cmd.Flags().StringVar(&o.Status, "status", string(entry.Planned), "Initial status.")
	cmd.Flags().StringVar(&o.Priority, "priority", string(entry.Medium), "Priority.")
	cmd.Flags().Float64Var(&o.Engagement, "engagement", 0, "Expected engagement score.")
	cmd.Flags().StringVar(&o.Recurring, "recurring", "", "Recurrence pattern, for example weekly.")
	cmd.Flags().StringVar(&o.Parent, "parent", "", "ID of the calendar this entry belongs to.")
	cmd.Flags().BoolVar(&o.Auto, "auto", false, "Mark the entry as auto-generated.")
}

// NewEntry combines the flags with the title and day.
func (o *EntryOptions) NewEntry(title string, on entry.Date) app.NewEntry {
	return app.NewEntry{
		Title:              title,
		Description:        o.Description,
		ContentPreview:     o.Preview,
		CalendarDate:       on,
		TimeSlot:           o.Slot,
		ContentType:        o.Type,
		TargetPlatforms:    o.Platforms,
		Status:             o.Status,
		Priority:           o.Priority,
		AutoGenerated:      o.Auto,
		IsRecurring:        o.Recurring != "",
		RecurringPattern:   o.Recurring,
		ParentCalendarID:   o.Parent,
		ExpectedEngagement: o.Engagement,
	}
}
