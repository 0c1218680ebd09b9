package ai

// EntityTypes defines the valid categories for extracted entities.
// These mirror the taxonomy of mainstream natural-language APIs so results
// stay comparable across analyzer implementations.
var EntityTypes = []string{
	"PERSON",
	"LOCATION",
	"ORGANIZATION",
	"EVENT",
	"WORK_OF_ART",
	"CONSUMER_GOOD",
	"PHONE_NUMBER",
	"ADDRESS",
	"DATE",
	"NUMBER",
	"PRICE",
	"OTHER",
}
