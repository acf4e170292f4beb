package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors       int
	WishlistUpdates   int
	Redemptions       int
	FailedRedemptions int
	FailedToggles     int
	SessionRejections int
	FailedRequests    int
	MemberActivities  map[string]int
	ErrorPatterns     map[string]int
}

func main() {
	logDir := "./logs"

	stats := &LogStats{
		MemberActivities: make(map[string]int),
		ErrorPatterns:    make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, "error.log"), stats)
	analyzeInfoLogs(filepath.Join(logDir, "info.log"), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if strings.Contains(line, "Redemption failed") {
			stats.FailedRedemptions++
			extractMemberActivity(line, stats)
		}

		if strings.Contains(line, "Wishlist toggle failed") {
			stats.FailedToggles++
			extractMemberActivity(line, stats)
		}

		if strings.Contains(line, "Session lookup failed") {
			stats.SessionRejections++
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "Wishlist updated successfully") {
			stats.WishlistUpdates++
			extractMemberActivity(line, stats)
		}

		if strings.Contains(line, "Item redeemed successfully") {
			stats.Redemptions++
			extractMemberActivity(line, stats)
		}
	}
}

func extractMemberActivity(line string, stats *LogStats) {
	// Handlers log "member <id>" on every wallet action
	memberRegex := regexp.MustCompile(`member (\d+)`)
	if match := memberRegex.FindStringSubmatch(line); match != nil {
		stats.MemberActivities[match[1]]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	parts := strings.Split(line, ":")
	if len(parts) > 1 {
		errorMsg := strings.TrimSpace(parts[1])
		stats.ErrorPatterns[errorMsg]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Wallet Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println("\n1. Wallet Activity:")
	fmt.Printf("   Wishlist Updates: %d\n", stats.WishlistUpdates)
	fmt.Printf("   Redemptions: %d\n", stats.Redemptions)
	fmt.Printf("   Failed Redemptions: %d\n", stats.FailedRedemptions)
	fmt.Printf("   Failed Wishlist Toggles: %d\n", stats.FailedToggles)

	fmt.Println("\n2. Session Issues:")
	fmt.Printf("   Session Lookup Failures: %d\n", stats.SessionRejections)

	fmt.Println("\n3. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)

	fmt.Println("\n4. Most Active Members:")
	printTopMembers(stats.MemberActivities, 5)

	fmt.Println("\n5. Most Common Errors:")
	printTopErrors(stats.ErrorPatterns, 5)
}

func printTopMembers(members map[string]int, limit int) {
	type memberActivity struct {
		memberID string
		count    int
	}

	var activities []memberActivity
	for memberID, count := range members {
		activities = append(activities, memberActivity{memberID, count})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].count > activities[j].count
	})

	for i, activity := range activities {
		if i >= limit {
			break
		}
		fmt.Printf("   member %s: %d activities\n", activity.memberID, activity.count)
	}
}

func printTopErrors(errors map[string]int, limit int) {
	type errorCount struct {
		error string
		count int
	}

	var errorList []errorCount
	for err, count := range errors {
		errorList = append(errorList, errorCount{err, count})
	}

	sort.Slice(errorList, func(i, j int) bool {
		return errorList[i].count > errorList[j].count
	})

	for i, err := range errorList {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d occurrences\n", err.error, err.count)
	}
}
