// Package config loads and validates application configuration.
//
// Configuration comes from three layers. Environment variables with the
// SALES prefix win over values from an optional config.yaml file, and the
// file wins over compiled-in defaults. Nested sections compose into the
// variable name, so cleaning.contamination is SALES_CLEANING_CONTAMINATION.
//
// Validation runs once after the layers merge. The cleaning section uses a
// custom "contamination" rule that accepts either the literal "auto" or a
// decimal fraction inside the supported range, mirroring what the pipeline
// itself accepts.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	pipelineCfg, err := cfg.Cleaning.ToPipelineConfig()
package config
