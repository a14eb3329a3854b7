package location

// DetectBreach reports a safe-area breach: the ward was inside on the
// previous report and is outside now. A nil previous state (first-ever
// report, or earlier reports stored without a containment flag) never
// signals. Entry into the area is deliberately not alert-worthy, only exit.
func DetectBreach(previousInside *bool, currentInside bool) bool {
	return previousInside != nil && *previousInside && !currentInside
}
