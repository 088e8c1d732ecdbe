package views

import "dsaudit/internal/domain"

// Messages for view switching
type SwitchToReportMsg struct{}

type SwitchToOrphansMsg struct {
	Row int
}

type SwitchToHelpMsg struct{}

// Messages for actions the app carries out
type ToggleIgnoreMsg struct {
	Kind domain.IgnoreKind
	Key  string
}

type ClearIgnoresMsg struct{}

type CopySummaryMsg struct{}

type ReanalyzeMsg struct{}

type EditConfigMsg struct{}

type CancelAnalysisMsg struct{}
