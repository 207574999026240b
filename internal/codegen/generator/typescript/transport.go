package typescript

const transportTemplate = `{{header .}}

import type { RpcOptions, RpcTransport } from '@protobuf-ts/runtime-rpc';
import { {{.Client}} } from '{{.Stub .ClientSource}}';
{{- range .Imports}}
import type { {{join .Types ", "}} } from '{{$.Stub .Source}}';
{{- end}}

/**
 * Wire calls of {{.Schema.FullName}} over a protobuf-ts RPC transport.
 */
export class {{.Name}}Requests {
    private readonly client: {{.Client}};

    constructor(transport: RpcTransport) {
        this.client = new {{.Client}}(transport);
    }
{{range .Schema.Methods}}
{{jsdoc "    " .Comment}}
{{- if .Unary}}    async {{.Name}}(request: {{.InputType}}, options?: RpcOptions): Promise<{{.OutputType}}> {
        const { response } = await this.client.{{.Name}}(request, options);
        return response;
    }
{{else if not .ClientStreaming}}    {{.Name}}(request: {{.InputType}}, options?: RpcOptions): AsyncIterable<{{.OutputType}}> {
        return this.client.{{.Name}}(request, options).responses;
    }
{{else}}    {{.Name}}(options?: RpcOptions) {
        return this.client.{{.Name}}(options);
    }
{{end}}{{end}}}
`
