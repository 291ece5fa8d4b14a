// Command napcon consolidates NAPLAN StudentOutcomeLevel CSV exports into a
// single master table.
//
// Running napcon with --input and --output appends every export in the input
// folder that the processed log does not already list, and records rows that
// lack a Student ID in the missing-ID report:
//
//	napcon --input ./exports --output master.csv [--missing missing_ids.csv] [--log Append_log.csv] [--force_rebuild]
//
// Exports must be named [test_year]_StudentOutcomeLevel_Yr[x]_[campus].csv;
// napcon asks for confirmation of the convention before writing unless --yes
// is passed or pipeline.assume_yes is set.
//
// Subcommands:
//
//	inspect   show what the next run would append, skip, or reject
//	history   list recent runs from the history database
//	logs      print or follow the latest session log
//	config    create or validate the configuration file
package main
