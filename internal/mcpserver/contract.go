package mcpserver

// TaskFormatContract describes where quicktask puts tasks and how the
// resulting lines look, so LLM callers can phrase add_task requests.
const TaskFormatContract = `# quicktask Task Format

quicktask appends one task per call to today's daily note of an Obsidian vault.

## Where the task goes

1. The note path comes from ` + "`" + `<vault>/.obsidian/daily-notes.json` + "`" + `:
   ` + "`" + `folder` + "`" + ` (optional) and ` + "`" + `format` + "`" + ` (default ` + "`" + `YYYY-MM-DD` + "`" + `).
   Tokens YYYY, YY, MM, DD, ddd, dddd, MMM and MMMM are replaced with today's date.
2. A missing or empty note is created as:

` + "```" + `markdown
# 2024-01-17

## Tasks

- [ ] Buy milk ⏳ 2024-01-18
` + "```" + `

3. A note with a ` + "`" + `## Tasks` + "`" + ` heading gets the task after the last non-blank
   line of that section, before the next ` + "`" + `## ` + "`" + ` heading.
4. A note without the heading gets a new ` + "`" + `## Tasks` + "`" + ` section at the end.

## Task line

` + "```" + `
- [ ] <content> ⏳ <due_date>
` + "```" + `

- ` + "`" + `content` + "`" + ` is required, single-line and is trimmed.
- ` + "`" + `due_date` + "`" + ` is optional and copied verbatim; use YYYY-MM-DD so the Obsidian
  Tasks plugin recognises it.
- With ` + "`" + `parse_date` + "`" + ` set, a date phrase inside ` + "`" + `content` + "`" + ` ("call Bob tomorrow",
  "pay rent fri") becomes the due date and is removed from the description.
  Shorthands tod, tom, yes and mon..sun are understood. Do not combine it with
  ` + "`" + `due_date` + "`" + `.
- Tasks are never de-duplicated.

## Vault references

The ` + "`" + `vault` + "`" + ` argument accepts a registry id, a vault name or an absolute path.
It may be omitted when exactly one vault is registered. Call ` + "`" + `list_vaults` + "`" + `
to see the choices.
`
