package data

import (
	_ "embed"
)

//go:embed seed/compliance_sections.json
var SeedComplianceSections []byte
