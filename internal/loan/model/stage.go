package model

// Stage identifies the conversation phase, each owned by a named agent.
type Stage string

const (
	StageIntake       Stage = "INTAKE"
	StageSales        Stage = "SALES"
	StageOffer        Stage = "OFFER"
	StageVerification Stage = "VERIFICATION"
	StageUnderwriting Stage = "UNDERWRITING"
	StageSanction     Stage = "SANCTION"
)

// stageOrder fixes the forward progression of the pipeline.
var stageOrder = []Stage{
	StageIntake,
	StageSales,
	StageOffer,
	StageVerification,
	StageUnderwriting,
	StageSanction,
}

// Ordinal returns the position of the stage in the pipeline, or -1 for an
// unknown stage.
func (s Stage) Ordinal() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// StageStatus is the progress-display state of a single stage.
type StageStatus string

const (
	StatusPending   StageStatus = "pending"
	StatusActive    StageStatus = "active"
	StatusCompleted StageStatus = "completed"
	StatusFailed    StageStatus = "failed"
)

// StageStatusUpdate is a one-directional side output consumed by the
// presentation layer; the engine never reads statuses back.
type StageStatusUpdate struct {
	Stage  Stage       `json:"stage"`
	Status StageStatus `json:"status"`
}

// StageInfo describes one entry of the progress board.
type StageInfo struct {
	Stage       Stage       `json:"stage"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      StageStatus `json:"status"`
}

// Stages returns the initial progress board: Intake active, the rest pending.
func Stages() []StageInfo {
	return []StageInfo{
		{Stage: StageIntake, Name: "Master Agent", Description: "Orchestrating workflow", Status: StatusActive},
		{Stage: StageSales, Name: "Sales Agent", Description: "Understanding needs", Status: StatusPending},
		{Stage: StageOffer, Name: "Offer Agent", Description: "Fetching best rates", Status: StatusPending},
		{Stage: StageVerification, Name: "Verification Agent", Description: "Validating documents", Status: StatusPending},
		{Stage: StageUnderwriting, Name: "Underwriting Agent", Description: "Risk assessment", Status: StatusPending},
		{Stage: StageSanction, Name: "Sanction Agent", Description: "Generating approval", Status: StatusPending},
	}
}
