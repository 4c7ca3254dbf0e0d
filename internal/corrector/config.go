package corrector

type CorrectionResult struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}
