package team

// NumThreads reports the team's fixed size, used to answer
// omp_get_max_threads() and the in-parallel case of omp_get_num_threads().
func (t *Team) NumThreads() int { return len(t.threads) }
