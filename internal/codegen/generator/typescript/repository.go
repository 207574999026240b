package typescript

const repositoryTemplate = `{{header .}}
{{range .Imports}}
import type { {{join .Types ", "}} } from '{{$.Stub .Source}}';
{{- end}}
import type { I{{.Name}}Repository } from '{{.ImportPaths.RepositoryToContract}}';
import { {{.Name}}Requests } from '{{.ImportPaths.RepositoryToTransport}}';

export class {{.Name}}Repository implements I{{.Name}}Repository {
    constructor(private readonly requests: {{.Name}}Requests) {}
{{range .Streamable}}
    {{.Name}}(request: {{.InputType}}): {{returnType .}} {
        return this.requests.{{.Name}}(request);
    }
{{end}}}
`
