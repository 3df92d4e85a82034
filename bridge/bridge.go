// Package bridge is the privileged surface between the kiosk UI and the
// machine: filesystem writes, database access, and printing. The UI only
// ever sees the typed results defined here; errors cross as messages, never
// as transport failures.
package bridge

import (
	"log"
	"time"

	"github.com/playlistx/photoboothbackend/media"
	"github.com/playlistx/photoboothbackend/models"
	"github.com/playlistx/photoboothbackend/printer"
	"github.com/playlistx/photoboothbackend/repository"
	"github.com/playlistx/photoboothbackend/workers"
)

// SaveFileResult reports a photo file save. FilePath is set only on success.
type SaveFileResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"filePath,omitempty"`
	Error    string `json:"error,omitempty"`
}

// OpResult reports an operation with no payload.
type OpResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ResultsResult carries a record listing.
type ResultsResult struct {
	Success bool                         `json:"success"`
	Data    []models.PhotoResultDocument `json:"data,omitempty"`
	Error   string                       `json:"error,omitempty"`
}

// ResultResult carries a single record lookup.
type ResultResult struct {
	Success bool                        `json:"success"`
	Data    *models.PhotoResultDocument `json:"data,omitempty"`
	Error   string                      `json:"error,omitempty"`
}

// Bridge exposes the privileged operations. All methods are synchronous;
// printing waits for the spooler handoff so callers know the job was
// accepted before they navigate away.
type Bridge struct {
	photoStore *media.PhotoStore
	results    repository.PhotoResultRepository
	printQueue *workers.PrintQueue
}

func New(photoStore *media.PhotoStore, results repository.PhotoResultRepository, printQueue *workers.PrintQueue) *Bridge {
	return &Bridge{
		photoStore: photoStore,
		results:    results,
		printQueue: printQueue,
	}
}

// SavePhotoFile persists a data-URI photo under the private photos
// directory. The returned FilePath is the completion signal: once this
// method returns success, the file is on disk and safe to print.
func (b *Bridge) SavePhotoFile(dataURI, fileName string) SaveFileResult {
	path, err := b.photoStore.SavePhoto(dataURI, fileName)
	if err != nil {
		log.Printf("bridge: Failed to save photo file '%s': %v", fileName, err)
		return SaveFileResult{Error: err.Error()}
	}
	return SaveFileResult{Success: true, FilePath: path}
}

// SavePhotoResult upserts a session record.
func (b *Bridge) SavePhotoResult(doc models.PhotoResultDocument) OpResult {
	if err := b.results.Save(doc); err != nil {
		log.Printf("bridge: Failed to save photo result '%s': %v", doc.ID, err)
		return OpResult{Error: err.Error()}
	}
	return OpResult{Success: true}
}

// GetAllPhotoResults lists all records, newest first.
func (b *Bridge) GetAllPhotoResults() ResultsResult {
	docs, err := b.results.GetAll()
	if err != nil {
		log.Printf("bridge: Failed to list photo results: %v", err)
		return ResultsResult{Error: err.Error()}
	}
	return ResultsResult{Success: true, Data: docs}
}

// GetPhotoResultByID fetches one record.
func (b *Bridge) GetPhotoResultByID(id string) ResultResult {
	doc, err := b.results.GetByID(id)
	if err != nil {
		log.Printf("bridge: Failed to fetch photo result '%s': %v", id, err)
		return ResultResult{Error: err.Error()}
	}
	return ResultResult{Success: true, Data: doc}
}

// Print queues the photo for the spooler workers and waits for the handoff
// result. The file must already exist; printing is only requested after
// SavePhotoFile reports completion.
func (b *Bridge) Print(filePath string) printer.Result {
	done := make(chan printer.Result, 1)
	if !b.printQueue.QueueJob(workers.PrintJob{PhotoPath: filePath, Done: done}) {
		return printer.Result{Error: "print already pending or queue full", Filepath: filePath}
	}

	select {
	case result := <-done:
		return result
	case <-time.After(2 * time.Minute):
		return printer.Result{Error: "timed out waiting for print handoff", Filepath: filePath}
	}
}
