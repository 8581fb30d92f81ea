package cli

const usageTemplate = `
OCR Frontend Client

Usage:
  ocrctl [OPTIONS] COMMAND

Options:
  --version           Show version information
  --server URL        Backend URL (default: http://localhost:8000)
  --data-dir PATH     Local data directory (default: ~/.ocr-frontend)
  --debug             Enable debug logging

Commands:
  login                        Sign in and persist the session
  logout                       Sign out and drop the persisted session
  status                       Show session status
  whoami                       Show the signed-in user's profile
  docs list                    List documents (filters: --status, --search, --sector, --preset, ...)
  docs get <id>                Show one document
  docs upload <file>           Upload a document for processing
  docs reprocess <id> [id...]  Queue documents for reprocessing
  docs download <id> [id...]   Download extracted JSON for documents
  docs archive <id> [id...]    Download selected documents as one archive
  docs watch <id>              Poll a document until processing finishes
  preset list|save|delete      Manage saved filter presets
  sector list|add|update|delete  Manage sectors (admin)
  user list|add|update|delete|reset-password  Manage accounts (admin)
  settings show|update|debug   Extraction settings and local flags
  keyword list|add|delete      Manage extraction keywords
  billing                      Show the current billing overview
  password-reset request|confirm  Reset a forgotten password
  help                         Show this message

Examples:
  ocrctl login
  ocrctl docs list --status failed --search invoice
  ocrctl docs list --preset monthly-claims
  ocrctl docs upload ./scan.pdf --sector s-12
  ocrctl docs watch doc-42
  ocrctl --server https://ocr.example.com billing
`

const profileTemplate = `
=== Profile ===

Username:  {{.Username}}
{{- if .DisplayName}}
Name:      {{.DisplayName}}
{{- end}}
{{- if .Email}}
Email:     {{.Email}}
{{- end}}
Role:      {{if .IsAdmin}}administrator{{else}}user{{end}}
{{- if .Sector}}
Sector:    {{with .Sector}}{{.Name}}{{if and .Name .ID}} ({{.ID}}){{else}}{{.ID}}{{end}}{{end}}
{{- end}}
`

const documentListTemplate = `
{{- if eq (len .Items) 0 }}
No documents found.
{{ else }}
Found {{.Total}} document(s){{if gt .Total (len .Items)}}, showing {{len .Items}} (page {{.Page}}){{end}}:

{{- range .Items }}
- {{ .Filename }}
   ID:       {{ .ID }}
   Status:   {{ .Status }}
   {{- if .SectorID }}
   Sector:   {{ .SectorID }}
   {{- end }}
   Uploaded: {{ .UploadedAt.Format "2006-01-02 15:04" }}
   {{- if .Error }}
   Error:    {{ .Error }}
   {{- end }}

{{- end }}
Use 'ocrctl docs get <id>' to view extracted fields.
{{- end }}
`

const documentTemplate = `
=== Document ===

Filename:  {{.Filename}}
ID:        {{.ID}}
Status:    {{.Status}}
{{- if .SectorID}}
Sector:    {{.SectorID}}
{{- end}}
{{- if .PageCount}}
Pages:     {{.PageCount}}
{{- end}}
Uploaded:  {{.UploadedAt.Format "2006-01-02 15:04:05"}}
{{- if .ProcessedAt}}
Processed: {{.ProcessedAt.Format "2006-01-02 15:04:05"}}
{{- end}}
{{- if .Error}}
Error:     {{.Error}}
{{- end}}
{{- if .Extracted}}

Extracted fields:
{{- range $name, $value := .Extracted}}
  {{$name}}: {{$value}}
{{- end}}
{{- end}}
`

const presetListTemplate = `
{{- if eq (len .) 0 }}
No saved presets.

Use 'ocrctl preset save <name>' to save the current filters.
{{ else }}
Found {{len .}} preset(s):

{{- range . }}
- {{ .Name }}
   ID: {{ .ID }}
   {{- range $key, $value := .Filters }}
   {{ $key }}: {{ $value }}
   {{- end }}

{{- end }}
{{- end }}
`

const sectorListTemplate = `
{{- if eq (len .) 0 }}
No sectors defined.
{{ else }}
Found {{len .}} sector(s):

{{- range . }}
- {{ .Name }}
   ID: {{ .ID }}
   {{- if .Description }}
   Description: {{ .Description }}
   {{- end }}

{{- end }}
{{- end }}
`

const userListTemplate = `
{{- if eq (len .) 0 }}
No accounts found.
{{ else }}
Found {{len .}} account(s):

{{- range . }}
- {{ .Username }}
   ID:     {{ .ID }}
   {{- if .Email }}
   Email:  {{ .Email }}
   {{- end }}
   Role:   {{ if .IsAdmin }}administrator{{ else }}user{{ end }}
   {{- if .Sector }}
   Sector: {{ .Sector.Name }}
   {{- end }}

{{- end }}
{{- end }}
`

const keywordListTemplate = `
{{- if eq (len .) 0 }}
No extraction keywords configured.
{{ else }}
Found {{len .}} keyword(s):

{{- range . }}
- {{ .Text }}{{ if .Field }} (field: {{ .Field }}){{ end }} [{{ .ID }}]
{{- end }}
{{ end }}
`

const extractionSettingsTemplate = `
=== Extraction Settings ===

{{- if eq (len .Fields) 0 }}

No extraction fields configured.
{{ else }}

{{- range .Fields }}
- {{ .Name }}
   Enabled: {{ .Enabled }}
   {{- if .Pattern }}
   Pattern: {{ .Pattern }}
   {{- end }}
{{- end }}
{{- end }}
`

const billingTemplate = `
=== Billing Overview ===

Period:     {{.PeriodStart}} to {{.PeriodEnd}}
Documents:  {{.DocumentsProcessed}} processed
Pages:      {{.PagesProcessed}} processed
Amount due: {{.AmountDue}} {{.Currency}}
`
