package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: schemex_extract
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemex_extract",
		Description: "Infer a structural schema from an XML, JSON, or YAML document. Returns a summary (element/attribute/data-node counts, max depth); set full_schema=true for the complete element tree and data nodes. Set save_path to persist the artifact for later merge, convert, validate, or query calls.",
	}, ToolExtract(d))

	// Tool 2: schemex_merge
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemex_merge",
		Description: "Merge schemas from multiple documents or saved artifacts into one schema describing their structural union. Documents are extracted concurrently; files ending in .schema.json are loaded as saved artifacts. Properties are unioned, attributes stay required only when required in every input.",
	}, ToolMerge(d))

	// Tool 3: schemex_convert
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemex_convert",
		Description: "Render a schema as json (native artifact), jsonschema (standard JSON Schema), or xsd (XML Schema Definition). Accepts a saved artifact or a raw document to extract first. Returns the rendered text; set save_path to also write it to disk.",
	}, ToolConvert(d))

	// Tool 4: schemex_validate
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemex_validate",
		Description: "Validate a document against a schema. The schema side accepts a saved artifact or a reference document; the document side accepts a file path (XML or JSON) or inline JSON content. Returns valid plus per-path error messages.",
	}, ToolValidate(d))

	// Tool 5: schemex_find_nodes
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemex_find_nodes",
		Description: "Search the data nodes of one or more schemas by data type, name, leaf-ness, and depth. Useful for locating every occurrence of a field across large documents, e.g. all integer leaves named 'id'.",
	}, ToolFindNodes(d))

	// Tool 6: schemex_query
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemex_query",
		Description: "Evaluate a JQ expression against a saved schema artifact or a raw JSON document. Artifact fields follow the saved layout (root_element, data_nodes, ...). Use schemex_find_nodes for simple field lookups; use this for arbitrary reshaping and filtering.",
	}, ToolQuery(d))
}
