package util

import "github.com/mahmoudkheyrati/cpu-scheduler/internal/core"

// CalculateAverage returns the mean waiting, response and turnaround times.
// An empty slice yields zeros.
func CalculateAverage(processDetails []core.ProcessResult) (averageWaitingTime, averageResponseTime, averageTurnAroundTime float64) {
	if len(processDetails) == 0 {
		return 0, 0, 0
	}

	var waitingTimeSum, responseTimeSum, turnAroundTimeSum int
	for _, process := range processDetails {
		waitingTimeSum += process.WaitingTime
		responseTimeSum += process.ResponseTime
		turnAroundTimeSum += process.TurnaroundTime
	}

	processCount := float64(len(processDetails))
	averageWaitingTime = float64(waitingTimeSum) / processCount
	averageResponseTime = float64(responseTimeSum) / processCount
	averageTurnAroundTime = float64(turnAroundTimeSum) / processCount
	return
}
