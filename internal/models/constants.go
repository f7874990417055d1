package models

const (
	// MetadataOriginalContent is the record metadata key holding the
	// JSON-encoded SeparatedContent.
	MetadataOriginalContent = "original_content"

	// ImageDataURIPrefix turns a raw base64 payload into an image part the
	// chat API accepts.
	ImageDataURIPrefix = "data:image/jpeg;base64,"

	// AnswerFallback is returned verbatim whenever retrieval or answer
	// generation fails. Callers cannot tell it apart from a real answer.
	AnswerFallback = "An error occurred while processing your request."

	// ReformulateInstruction is the system message for collapsing a
	// conversation into one standalone question.
	ReformulateInstruction = "Create a new standalone question from the conversation history and the current question."
)

var (
	SummaryPromptHeader = `Generate a concise summary for the following content:

Text Content:
%s

`

	SummaryPromptTask = `
YOUR TASK:
Generate a comprehensive, searchable description that covers:

1. Key facts, numbers, and data points from text and tables
2. Main topics and concepts discussed
3. Questions this content could answer
4. Visual content analysis (charts, diagrams, patterns in images)
5. Alternative search terms users might use

Make it detailed and searchable - prioritize findability over brevity.

SEARCHABLE DESCRIPTION:`

	AnswerPromptHeader = `Based on the following documents, please answer the question: %s
Document:
`

	AnswerPromptFooter = `Please provide a clear, comprehensive answer using the text, tables, and images above. If the documents don't contain sufficient information to answer the question, say "I don't have enough information to answer that question based on the provided documents."
ANSWER:`
)
