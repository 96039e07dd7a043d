// Package blueprint writes API Blueprint Markdown, one file per resource.
//
// A [Writer] receives one [Entry] per documented test case and appends it to
// the resource's file:
//
//	# Group Widget
//
//	Widget resource
//
//	## GET /widgets
//	Lists widgets
//
//	+ Response 200 (application/json)
//
//	    {
//	      "id": 1
//	    }
//
// The first entry for a resource in a run deletes and recreates the file, so
// repeated runs never accumulate stale sections. Within a run the resource
// header is written once and each action header at most once, however many
// test cases exercise the action. Responses with status 301, 401 or 403 are
// not representative of an endpoint and are left out entirely.
//
// Request bodies sent as application/x-www-form-urlencoded are documented as
// the equivalent JSON object, and JSON bodies are pretty-printed with their
// key order intact. With [WithSchema], every JSON payload also gets a
// "+ Schema" section holding a JSON Schema inferred from the body.
//
// [Assemble] concatenates the per-resource files into a single document.
package blueprint
