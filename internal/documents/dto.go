package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID       string     `json:"documentId"`
	Title            string     `json:"title"`
	OriginalFilename string     `json:"originalFilename"`
	FileFormat       string     `json:"fileFormat"`
	SizeBytes        int64      `json:"sizeBytes"`
	Status           string     `json:"status"`
	ErrorMessage     string     `json:"errorMessage,omitempty"`
	CatStory         string     `json:"catStory,omitempty"`
	HasContent       bool       `json:"hasContent"`
	ProcessedAt      *time.Time `json:"processedAt,omitempty"`
	UploadedAt       time.Time  `json:"uploadedAt"`
}

func toResponse(doc *Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:       doc.ID,
		Title:            doc.Title,
		OriginalFilename: doc.OriginalFilename,
		FileFormat:       string(doc.Format),
		SizeBytes:        doc.SizeBytes,
		Status:           string(doc.Status()),
		ErrorMessage:     doc.ErrorMessage(),
		CatStory:         doc.CatStory(),
		HasContent:       doc.HasOriginalContent(),
		ProcessedAt:      doc.ProcessedAt(),
		UploadedAt:       doc.CreatedAt,
	}
}

func toResponseList(docs []*Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	return out
}
