/*
Package extract locates semantically named columns in loosely structured
sheets and flattens their rows into records.

The engine is pure: it reads a workbook.Workbook and returns records. It takes
all of its settings as explicit arguments and never performs I/O of its own.

A run over one workbook goes through these steps:

	entity map   <- BuildEntityMap(index sheet)
	for each data sheet:
		header map <- ResolveHeaders(header row, targets, threshold)
		records    <- ExtractRows(sheet, header map, entity, row spec)
	cleaned      <- Coerce(records, numeric policies)

Header text is compared after Normalize, using Similarity, a
Ratcliff/Obershelp matching ratio. Targets flagged Exact must match the
normalized header text exactly, which keeps "Fe magnetic 1" away from
"Fe magnetic 10".
*/
package extract
