package sandbox

import (
	"math/rand/v2"

	"github.com/careercoach/coach/internal/assessment"
)

// DefaultQuizSize is the number of questions per generated quiz.
const DefaultQuizSize = 10

// DefaultBank returns the built-in technical interview question bank.
func DefaultBank() []assessment.Question {
	return []assessment.Question{
		{
			Text:          "Which Go statement guarantees a function call runs when the surrounding function returns?",
			Options:       []string{"A. go", "B. defer", "C. select", "D. goto"},
			CorrectAnswer: "B",
			Explanation:   "Deferred calls run after the surrounding function's return statement, in LIFO order.",
		},
		{
			Text:          "What is the zero value of a map in Go?",
			Options:       []string{"A. An empty map", "B. nil", "C. A map with one zero entry", "D. It does not compile"},
			CorrectAnswer: "B",
			Explanation:   "A nil map can be read but writing to it panics; use make to allocate.",
		},
		{
			Text:          "Which HTTP status code indicates the client must authenticate?",
			Options:       []string{"A. 401", "B. 403", "C. 404", "D. 409"},
			CorrectAnswer: "A",
			Explanation:   "401 Unauthorized means credentials are missing or invalid; 403 means they are valid but insufficient.",
		},
		{
			Text:          "What does the CAP theorem say a partitioned distributed system must trade off?",
			Options:       []string{"A. Latency and throughput", "B. Consistency and availability", "C. Durability and isolation", "D. Security and performance"},
			CorrectAnswer: "B",
			Explanation:   "During a network partition a system can remain consistent or available, not both.",
		},
		{
			Text:          "Which SQL isolation level prevents dirty reads but allows non-repeatable reads?",
			Options:       []string{"A. Read uncommitted", "B. Read committed", "C. Repeatable read", "D. Serializable"},
			CorrectAnswer: "B",
			Explanation:   "Read committed only shows committed data, but a second read may see a newer commit.",
		},
		{
			Text:          "What is the average time complexity of a hash table lookup?",
			Options:       []string{"A. O(1)", "B. O(log n)", "C. O(n)", "D. O(n log n)"},
			CorrectAnswer: "A",
			Explanation:   "With a good hash function and load factor, lookups are constant time on average.",
		},
		{
			Text:          "Which data structure backs a breadth-first search?",
			Options:       []string{"A. Stack", "B. Queue", "C. Heap", "D. Trie"},
			CorrectAnswer: "B",
			Explanation:   "BFS visits nodes in discovery order, which a FIFO queue provides.",
		},
		{
			Text:          "What does an idempotent HTTP method guarantee?",
			Options:       []string{"A. It is cacheable", "B. It has no body", "C. Repeating it has the same effect as doing it once", "D. It never fails"},
			CorrectAnswer: "C",
			Explanation:   "PUT and DELETE are idempotent; POST generally is not.",
		},
		{
			Text:          "In Go, what happens when you send on a closed channel?",
			Options:       []string{"A. The send blocks forever", "B. The value is dropped", "C. It panics", "D. It returns an error"},
			CorrectAnswer: "C",
			Explanation:   "Sending on a closed channel panics; receiving from one yields the zero value.",
		},
		{
			Text:          "Which index type best serves range queries in a relational database?",
			Options:       []string{"A. Hash index", "B. B-tree index", "C. Bitmap index", "D. No index"},
			CorrectAnswer: "B",
			Explanation:   "B-trees keep keys ordered, so a range is a contiguous scan.",
		},
		{
			Text:          "What is the main purpose of a circuit breaker in service calls?",
			Options:       []string{"A. Encrypt traffic", "B. Stop calling a failing dependency for a while", "C. Balance load", "D. Cache responses"},
			CorrectAnswer: "B",
			Explanation:   "Failing fast protects both the caller and the struggling dependency.",
		},
		{
			Text:          "Which Git command creates a new commit that undoes an earlier one?",
			Options:       []string{"A. git reset", "B. git revert", "C. git checkout", "D. git stash"},
			CorrectAnswer: "B",
			Explanation:   "revert adds an inverse commit and keeps history intact, unlike reset.",
		},
		{
			Text:          "What does the 'I' in ACID stand for?",
			Options:       []string{"A. Integrity", "B. Isolation", "C. Indexing", "D. Immutability"},
			CorrectAnswer: "B",
			Explanation:   "Isolation means concurrent transactions behave as if run one at a time.",
		},
		{
			Text:          "Which Go tool reports data races at runtime?",
			Options:       []string{"A. go vet", "B. go test -race", "C. gofmt", "D. go mod tidy"},
			CorrectAnswer: "B",
			Explanation:   "The race detector instruments memory accesses when built with -race.",
		},
		{
			Text:          "What does a 503 Service Unavailable response suggest a client should do?",
			Options:       []string{"A. Fix the request body", "B. Re-authenticate", "C. Retry later", "D. Follow the Location header"},
			CorrectAnswer: "C",
			Explanation:   "503 is transient; clients may retry, honoring Retry-After when present.",
		},
		{
			Text:          "Which technique keeps a cache and its database from serving stale reads after a write?",
			Options:       []string{"A. Write-through or invalidation on write", "B. Longer TTLs", "C. Client-side sharding", "D. Gzip compression"},
			CorrectAnswer: "A",
			Explanation:   "Updating or evicting the cached entry on write keeps reads consistent.",
		},
	}
}

// draw returns n questions from bank in random order. n is clamped to the
// bank size. bank is not modified.
func draw(bank []assessment.Question, n int, rng *rand.Rand) assessment.QuizSet {
	if n > len(bank) {
		n = len(bank)
	}
	idx := rng.Perm(len(bank))[:n]
	out := make(assessment.QuizSet, n)
	for i, j := range idx {
		q := bank[j]
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
