package openai

// summarySystemPrompt frames every summarization request.
const summarySystemPrompt = "You are a professional meeting summarizer. Create clear, concise summaries."
