package queue

import "errors"

// ErrQueueFull is returned by Enqueue when the queue has no room left
var ErrQueueFull = errors.New("queue is full")

// Queue represents a basic queue.
type Queue interface {
	Enqueue(item interface{}) error
	Dequeue() (interface{}, bool)
	Size() int
	ReadAllMessages() ([]interface{}, error)
	ClearQueue()
}
