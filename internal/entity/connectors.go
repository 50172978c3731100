package entity

// Wire types exchanged with the external RAG, LLM and ASR services.

type RAGIndexResponse struct {
	ChunksIndexed int            `json:"chunks_indexed"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type RAGGetContextRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
	TopK      int    `json:"top_k"`
}

type RAGGetContextResponse struct {
	RelevantChunks []RAGChunk `json:"relevant_chunks"`
}

type RAGChunk struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type LLMQuestionsRequest struct {
	SessionID   string `json:"session_id"`
	Role        string `json:"role"`
	CountRole   int    `json:"count_role"`
	CountResume int    `json:"count_resume"`
	Context     string `json:"context,omitempty"`
}

type LLMHRQuestionsRequest struct {
	SessionID string `json:"session_id"`
	Count     int    `json:"count"`
	Context   string `json:"context,omitempty"`
}

type LLMQuestionsResponse struct {
	Questions []string `json:"questions"`
}

type LLMEvaluateRequest struct {
	SessionID        string   `json:"session_id"`
	Role             string   `json:"role"`
	TechnicalAnswers []Answer `json:"technical_answers"`
	HRAnswers        []Answer `json:"hr_answers"`
}

type ASRTranscribeResponse struct {
	Transcript string `json:"transcript"`
}
