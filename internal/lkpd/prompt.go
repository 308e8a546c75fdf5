package lkpd

import (
	"fmt"
	"strings"
)

// GenerateOptions are optional knobs on worksheet generation.
type GenerateOptions struct {
	Level        string `json:"level,omitempty"`         // e.g. "SMP kelas VIII"
	ExtraContext string `json:"extra_context,omitempty"` // free-form teacher notes
}

const worksheetSystemPrompt = "Anda adalah seorang guru berpengalaman yang merancang " +
	"Lembar Kerja Peserta Didik (LKPD) yang interaktif dan sesuai kurikulum. " +
	"Balas hanya dengan satu dokumen JSON, tanpa teks lain."

// worksheetSchemaHint spells out the exact field names the decoder expects.
// Keep it in sync with the Worksheet struct tags.
const worksheetSchemaHint = `{
  "title": "string",
  "learning_objectives": ["string"],
  "summary": "string",
  "activities": [
    {
      "name": "string",
      "instructions": "string",
      "interactive_tasks": ["string"],
      "prompt_questions": [{"text": "string"}]
    }
  ]
}`

// BuildWorksheetPrompt embeds the topic, the optional parameters, and the
// structural schema the response must follow.
func BuildWorksheetPrompt(topic string, opts GenerateOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Buatkan LKPD lengkap untuk topik pembelajaran: %q.\n", topic)
	if opts.Level != "" {
		fmt.Fprintf(&b, "Jenjang/kelas: %s.\n", opts.Level)
	}
	if opts.ExtraContext != "" {
		fmt.Fprintf(&b, "Konteks tambahan dari guru: %s.\n", opts.ExtraContext)
	}
	b.WriteString("Sertakan tujuan pembelajaran, materi singkat, dan minimal dua kegiatan, " +
		"masing-masing dengan tugas interaktif dan pertanyaan pemantik.\n")
	b.WriteString("Kembalikan hasilnya sebagai JSON dengan struktur persis berikut:\n")
	b.WriteString(worksheetSchemaHint)
	return b.String()
}
