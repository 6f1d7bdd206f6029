// Package ini parses section-based documents.
//
// Keys outside any section keep their bare name; keys inside "[section]" become
// "section<delimiter>key". Repeated keys within a section form a list.
//
//	first = blockless
//	[block1]
//	value = 13
//
// yields "first" = "blockless" and "block1.value" = "13" for the "." delimiter.
package ini
