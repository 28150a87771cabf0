package partition

import "hash/fnv"

// Count is the number of logical partitions game aggregate rows are spread over.
// Changing it reshuffles every stored partition_id, so treat it as fixed.
const Count = 256

// For maps a learner to its partition. The mapping is stable across processes.
func For(learnerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(learnerID))
	return int(h.Sum32() % Count)
}
