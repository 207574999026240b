package typescript

const contractTemplate = `{{header .}}
{{range .Imports}}
import type { {{join .Types ", "}} } from '{{$.Stub .Source}}';
{{- end}}

/**
 * Data access contract of the {{.Module}} module.
 */
export interface I{{.Name}}Repository {
{{- range .Streamable}}
{{jsdoc "    " .Comment}}    {{.Name}}(request: {{.InputType}}): {{returnType .}};
{{- end}}
}
`
