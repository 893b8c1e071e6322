package types

// ValidationResult contains the result of validating a single value.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// SampleValidation contains the validation result for a single sample.
type SampleValidation struct {
	Index  int      `json:"index"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidationSummary summarizes the validation results.
type ValidationSummary struct {
	TotalSamples  int  `json:"total_samples"`
	MatchingCount int  `json:"matching_count"`
	FailedCount   int  `json:"failed_count"`
	AllMatch      bool `json:"all_match"`
}

// CommonError represents a frequently occurring validation error.
type CommonError struct {
	Error     string `json:"error"`
	Frequency int    `json:"frequency"`
}

// ValidateOutput is the output type for the typegen_validate tool.
type ValidateOutput struct {
	Summary      ValidationSummary  `json:"summary"`
	Results      []SampleValidation `json:"results,omitzero"`
	CommonErrors []CommonError      `json:"common_errors,omitempty"`
	Schema       any                `json:"schema,omitempty"`
	RootTypeName string             `json:"root_type_name,omitempty"`
}
