package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ezbase/ezbase/pkg/domain"
	"github.com/ezbase/ezbase/pkg/records"
)

// The record surface mirrors the client SDK: collection management plus
// document CRUD, every response wrapped in the {error, data} envelope.

// HandleCreateCollection handles POST requests ensuring a collection exists
func (h *Handler) HandleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CollectionName string `json:"collection_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.db.Engine().CreateCollection(body.CollectionName); err != nil {
		log.Printf("ERROR: Create collection '%s' failed: %v", body.CollectionName, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Collection '%s' ready", body.CollectionName)
	WriteData(w, http.StatusCreated, body.CollectionName)
}

// HandleDeleteCollection handles DELETE requests removing a collection
func (h *Handler) HandleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CollectionName string `json:"collection_name"`
		DeleteAllData  bool   `json:"delete_all_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.db.Engine().DeleteCollection(body.CollectionName, body.DeleteAllData); err != nil {
		log.Printf("ERROR: Delete collection '%s' failed: %v", body.CollectionName, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Collection '%s' deleted", body.CollectionName)
	WriteData(w, http.StatusOK, true)
}

// HandleInsertDoc handles POST requests inserting a document
func (h *Handler) HandleInsertDoc(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CollectionName string          `json:"collection_name"`
		Data           domain.Document `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.records.Create(body.Data, body.CollectionName)
	if err != nil {
		log.Printf("ERROR: Insert into collection '%s' failed: %v", body.CollectionName, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Inserted document '%s' into collection '%s'", record.ID(), body.CollectionName)
	WriteData(w, http.StatusCreated, record)
}

// HandleGetDoc handles GET requests retrieving one document by id
func (h *Handler) HandleGetDoc(w http.ResponseWriter, r *http.Request) {
	collName := r.URL.Query().Get("collection_name")
	docId := r.URL.Query().Get("doc_id")

	doc, err := h.db.GetCollection(collName).Get(docId)
	if err != nil {
		log.Printf("ERROR: Get document '%s' from collection '%s' failed: %v", docId, collName, err)
		WriteError(w, err)
		return
	}

	WriteData(w, http.StatusOK, records.Sanitize(doc))
}

// HandleGetAllDocs handles GET requests listing a whole collection
func (h *Handler) HandleGetAllDocs(w http.ResponseWriter, r *http.Request) {
	collName := r.URL.Query().Get("collection_name")

	docs, err := h.records.Read(nil, collName)
	if err != nil {
		log.Printf("ERROR: List collection '%s' failed: %v", collName, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Found %d documents in collection '%s'", len(docs), collName)
	WriteData(w, http.StatusOK, docs)
}

// HandleFindDoc handles POST requests querying a collection. matches caps
// the result count; -1 returns every match.
func (h *Handler) HandleFindDoc(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CollectionName string                 `json:"collection_name"`
		Query          map[string]interface{} `json:"query"`
		Matches        int                    `json:"matches"`
	}
	body.Matches = -1
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	docs, err := h.records.Read(body.Query, body.CollectionName)
	if err != nil {
		log.Printf("ERROR: Find in collection '%s' failed: %v", body.CollectionName, err)
		WriteError(w, err)
		return
	}

	if body.Matches >= 0 && body.Matches < len(docs) {
		docs = docs[:body.Matches]
	}

	log.Printf("INFO: Found %d documents in collection '%s' with filter %v", len(docs), body.CollectionName, body.Query)
	WriteData(w, http.StatusOK, docs)
}

// HandleUpdateDoc handles POST requests shallow-merging fields into a document
func (h *Handler) HandleUpdateDoc(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CollectionName string          `json:"collection_name"`
		DocId          string          `json:"doc_id"`
		NewRecord      domain.Document `json:"new_record"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.db.GetCollection(body.CollectionName).Update(body.DocId, body.NewRecord)
	if err != nil {
		log.Printf("ERROR: Update document '%s' in collection '%s' failed: %v", body.DocId, body.CollectionName, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Updated document '%s' in collection '%s'", body.DocId, body.CollectionName)
	WriteData(w, http.StatusOK, records.Sanitize(updated))
}

// HandleDeleteDoc handles DELETE requests removing a document by id
func (h *Handler) HandleDeleteDoc(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CollectionName string `json:"collection_name"`
		DocId          string `json:"doc_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	removed, err := h.db.GetCollection(body.CollectionName).DeleteById(body.DocId)
	if err != nil {
		log.Printf("ERROR: Delete document '%s' from collection '%s' failed: %v", body.DocId, body.CollectionName, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Deleted document '%s' from collection '%s'", body.DocId, body.CollectionName)
	WriteData(w, http.StatusOK, records.Sanitize(removed))
}
