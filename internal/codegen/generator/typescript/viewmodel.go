package typescript

const viewModelTemplate = `{{header .}}
{{range .Imports}}
import type { {{join .Types ", "}} } from '{{$.Stub .Source}}';
{{- end}}
import type { {{.Name}}Repository } from '{{.ImportPaths.ViewModelToRepository}}';

export interface {{.Name}}ViewState {
    loading: boolean;
    error: Error | null;
}

export class {{.Name}}ViewModel {
    state: {{.Name}}ViewState = { loading: false, error: null };

    constructor(private readonly repository: {{.Name}}Repository) {}

    private async run<T>(call: () => Promise<T>): Promise<T | undefined> {
        this.state = { loading: true, error: null };
        try {
            return await call();
        } catch (err) {
            this.state = { ...this.state, error: err instanceof Error ? err : new Error(String(err)) };
            return undefined;
        } finally {
            this.state = { ...this.state, loading: false };
        }
    }
{{range .Unary}}
    {{.Name}}(request: {{.InputType}}): Promise<{{.OutputType}} | undefined> {
        return this.run(() => this.repository.{{.Name}}(request));
    }
{{end}}}
`
