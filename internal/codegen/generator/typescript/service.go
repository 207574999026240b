package typescript

const serviceTemplate = `{{header .}}
{{range .Imports}}
import type { {{join .Types ", "}} } from '{{$.Stub .Source}}';
{{- end}}
import type { I{{.Name}}Repository } from '{{.ImportPaths.ServiceToContract}}';
import type { {{.Name}}Repository } from '{{.ImportPaths.ServiceToRepository}}';

/**
 * Business logic of the {{.Module}} module.
 */
export class {{.Name}}Service {
    constructor(private readonly repository: I{{.Name}}Repository) {}

    static fromRepository(repository: {{.Name}}Repository): {{.Name}}Service {
        return new {{.Name}}Service(repository);
    }
{{range .Streamable}}
{{jsdoc "    " .Comment}}
{{- if .ServerStreaming}}    {{.Name}}(request: {{.InputType}}): AsyncIterable<{{.OutputType}}> {
        return this.repository.{{.Name}}(request);
    }
{{else}}    async {{.Name}}(request: {{.InputType}}): Promise<{{.OutputType}}> {
        return this.repository.{{.Name}}(request);
    }
{{end}}{{end}}}
`
