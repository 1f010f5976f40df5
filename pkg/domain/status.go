package domain

// StatusPending is the resolved status for projects whose history contains no
// recognized event.
const StatusPending = "Pending"

// PortalURL points report readers at the order portal.
const PortalURL = "https://ngisweden.scilifelab.se/orders"

// DefaultPriority orders the known status names most advanced first. A
// history containing several recognized events always resolves to the
// highest-ranked one, regardless of event dates.
var DefaultPriority = []string{
	"All Raw Data Delivered",
	"All Samples Sequenced",
	"Library QC Finished",
	"Reception Control Finished",
	"Samples Received",
}

// StatusIcons maps status names to their display icon.
var StatusIcons = map[string]string{
	"All Raw Data Delivered":     "cloud-download",
	"All Samples Sequenced":      "body-text",
	"Library QC Finished":        "check2-all",
	"Reception Control Finished": "check2",
	"Samples Received":           "box-seam",
}

// StatusDescriptions maps status names to the explanation shown to PIs.
var StatusDescriptions = map[string]string{
	"All Raw Data Delivered":     "The data has been made available through NGIs delivery system.",
	"All Samples Sequenced":      "Sequencing (including potential resequencing) of all samples has been finished.",
	"Library QC Finished":        "Library QC is a quality control of the sequencing library produced either by NGI or supplied by you, depending on the type of project.",
	"Reception Control Finished": "Reception Control consists of NGI staff measuring e.g. concentration and volume for the samples received.",
	"Samples Received":           "The samples have been received and registered at NGI.",
	StatusPending:                "The order has been set up but the samples have not yet been received or registered by NGI.",
}

// ResolveStatus collapses a project's event history into its single current
// status: the highest-priority status name observed anywhere in the history.
// Event names outside the priority vocabulary are ignored. An empty or
// unrecognized history resolves to StatusPending.
func ResolveStatus(projectDates map[string][]string, priority []string) string {
	seen := make(map[string]struct{})
	for _, events := range projectDates {
		for _, event := range events {
			seen[event] = struct{}{}
		}
	}
	for _, status := range priority {
		if _, ok := seen[status]; ok {
			return status
		}
	}
	return StatusPending
}

// ReversePriority returns the priority ordering least advanced first.
func ReversePriority(priority []string) []string {
	reversed := make([]string, len(priority))
	for i, status := range priority {
		reversed[len(priority)-1-i] = status
	}
	return reversed
}
