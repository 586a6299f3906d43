// Mock content provider for local development. Serves static course and
// question-set collections in the provider's response shape.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync/atomic"
)

var requestCount atomic.Int64

type collection struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
}

func main() {
	port := "9090"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}

	courses := collection{
		Success: true,
		Data: []json.RawMessage{
			json.RawMessage(`{"identifier":"do_course_101","name":"Foundations of Pedagogy","description":"Intro course","channel":"in.state.demo","language":"en","status":"live"}`),
			json.RawMessage(`{"identifier":"do_course_102","name":"Classroom Assessment","channel":"in.state.demo","language":"en","status":"live"}`),
			json.RawMessage(`{"name":"missing identifier on purpose"}`),
		},
	}

	questionSets := collection{
		Success: true,
		Data: []json.RawMessage{
			json.RawMessage(`{"identifier":"do_qs_201","name":"Grade 5 Math Baseline","subject":"mathematics","status":"live"}`),
			json.RawMessage(`{"identifier":"do_qs_202","name":"Grade 5 Science Baseline","subject":"science","status":"live"}`),
		},
	}

	http.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		count := requestCount.Add(1)
		log.Printf("[%d] GET /api/v1/courses", count)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(courses)
	})

	http.HandleFunc("/api/v1/question-sets", func(w http.ResponseWriter, r *http.Request) {
		count := requestCount.Add(1)
		log.Printf("[%d] GET /api/v1/question-sets", count)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(questionSets)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	log.Printf("Mock content API starting on :%s", port)
	log.Printf("  GET /api/v1/courses")
	log.Printf("  GET /api/v1/question-sets")
	log.Printf("  GET /health")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
