package mcpserver

// RecordFormat describes how vault notes become tree records. LLM consumers
// read it before proposing frontmatter changes.
const RecordFormat = `# arbor Record Format

Every ` + "`" + `.md` + "`" + ` file in the vault becomes one record. Files and folders whose
name starts with a dot (for example ` + "`" + `.obsidian/` + "`" + `) are ignored.

## Frontmatter

` + "```" + `markdown
---
parent: "[[exercise]]"     # OPTIONAL – the note this one hangs under
status: active             # OPTIONAL – free text, offered as a filter
category: fitness          # OPTIONAL – free text, offered as a filter
effort: high               # any other key becomes its own column
---

Body text is not read.
` + "```" + `

## Rules

1. The block must start on the very first line with ` + "`" + `---` + "`" + ` and end with a line
   containing only ` + "`" + `---` + "`" + `. Without a closing line the note has no fields.
2. Each line is ` + "`" + `key: value` + "`" + `, split on the first colon. Matching single or
   double quotes around the value are removed. Nested YAML is not understood.
3. **Name** is the file name without ` + "`" + `.md` + "`" + `; a ` + "`" + `name` + "`" + ` key in frontmatter is ignored.
   When two files share a name the first one crawled wins.
4. **Parent** is the first ` + "`" + `[[...]]` + "`" + ` link of the ` + "`" + `parent` + "`" + ` field. An alias
   (` + "`" + `[[target|shown text]]` + "`" + `) resolves to the target. Any other value means no parent.
5. A note whose parent is missing or names no existing note is a **root**.
6. Cycles are allowed on disk; trees stop at the first repeated name.

## Outputs of the crawl command

- ` + "`" + `vault_notes.csv` + "`" + ` – one row per note, columns ` + "`" + `name, file_path, parent, status, category` + "`" + `
  followed by every other key in alphabetical order.
- ` + "`" + `reference_tree.md` + "`" + ` – the forest as indented ` + "`" + `[[name]]` + "`" + ` links.
`
