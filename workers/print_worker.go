package workers

import (
	"log"
	"os"
	"sync"

	"github.com/playlistx/photoboothbackend/printer"
)

// PrintJob asks the pool to print one saved photo.
type PrintJob struct {
	PhotoPath string
	// Done, when non-nil, receives the print result. The channel must be
	// buffered; workers never block on delivery.
	Done chan printer.Result
}

// PrintQueue runs print jobs on background workers so a slow spooler never
// blocks the kiosk UI. Duplicate jobs for a photo already in flight are
// dropped; the dye-sub printer should not double-print a visitor's photo
// because of a double tap.
type PrintQueue struct {
	JobQueue chan PrintJob
	Printer  *printer.Printer
	Wg       sync.WaitGroup
	StopChan chan struct{}
	Pending  map[string]bool
	Mutex    sync.Mutex
}

func NewPrintQueue(p *printer.Printer, queueSize, numWorkers int) *PrintQueue {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 20
	}

	pq := &PrintQueue{
		JobQueue: make(chan PrintJob, queueSize),
		Printer:  p,
		StopChan: make(chan struct{}),
		Pending:  make(map[string]bool),
	}

	pq.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go pq.worker(i)
	}
	log.Printf("started %d print worker(s) with queue size %d", numWorkers, queueSize)

	return pq
}

func (pq *PrintQueue) worker(id int) {
	defer pq.Wg.Done()
	log.Printf("print worker %d started", id)
	for {
		select {
		case job, ok := <-pq.JobQueue:
			if !ok {
				log.Printf("print worker %d stopping: Job queue closed", id)
				return
			}
			log.Printf("worker %d printing: %s", id, job.PhotoPath)
			pq.processJob(job)
			pq.Mutex.Lock()
			delete(pq.Pending, job.PhotoPath)
			pq.Mutex.Unlock()

		case <-pq.StopChan:
			log.Printf("print worker %d stopping: stop signal received", id)
			return
		}
	}
}

func (pq *PrintQueue) processJob(job PrintJob) {
	if _, err := os.Stat(job.PhotoPath); os.IsNotExist(err) {
		log.Printf("photo %s not found, skipping print", job.PhotoPath)
		pq.deliver(job, printer.Result{Error: "photo file does not exist: " + job.PhotoPath})
		return
	} else if err != nil {
		log.Printf("error stating photo %s before printing: %v", job.PhotoPath, err)
	}

	result := pq.Printer.Print(job.PhotoPath)
	if !result.Success {
		log.Printf("ERROR printing %s: %s", job.PhotoPath, result.Error)
	} else {
		log.Printf("successfully submitted print job for: %s", job.PhotoPath)
	}
	pq.deliver(job, result)
}

func (pq *PrintQueue) deliver(job PrintJob, result printer.Result) {
	if job.Done == nil {
		return
	}
	select {
	case job.Done <- result:
	default:
		log.Printf("WARNING: print result for %s dropped, done channel full", job.PhotoPath)
	}
}

func (pq *PrintQueue) QueueJob(job PrintJob) bool {
	pq.Mutex.Lock()
	if pq.Pending[job.PhotoPath] {
		pq.Mutex.Unlock()
		log.Printf("print for %s already pending, skipping queue", job.PhotoPath)
		return false
	}

	pq.Pending[job.PhotoPath] = true
	pq.Mutex.Unlock()

	select {
	case pq.JobQueue <- job:
		log.Printf("queued print for: %s", job.PhotoPath)
		return true
	default:
		log.Printf("WARNING: Print job queue full!!!! failed to queue job for: %s", job.PhotoPath)
		pq.Mutex.Lock()
		delete(pq.Pending, job.PhotoPath)
		pq.Mutex.Unlock()
		return false
	}
}

func (pq *PrintQueue) Stop() {
	log.Println("stopping print queue...")
	close(pq.StopChan)
	pq.Wg.Wait()
	log.Println("all print workers stopped")
}
