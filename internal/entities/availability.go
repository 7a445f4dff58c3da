package entities

// AvailabilityResult is the response of the availability query. An empty slot
// list and a null next day are both valid outcomes, not errors.
type AvailabilityResult struct {
	Date             string   `json:"date"`
	AvailableSlots   []string `json:"availableSlots"`
	NextAvailableDay *string  `json:"nextAvailableDay"`
}
