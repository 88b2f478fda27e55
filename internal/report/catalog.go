package report

import "sort"

// Catalog returns every chart of the battery ordered by id.
func Catalog() []Job {
	var jobs []Job
	jobs = append(jobs, trendJobs()...)
	jobs = append(jobs, comparisonJobs()...)
	jobs = append(jobs, mapJobs()...)
	jobs = append(jobs, surveyJobs()...)
	jobs = append(jobs, monitoringJobs()...)
	sort.SliceStable(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })
	return jobs
}
