package services

import "sort"

// HierarchyValidator checks the integrity of a reporting hierarchy
type HierarchyValidator struct{}

// NewHierarchyValidator creates a new hierarchy validator
func NewHierarchyValidator() *HierarchyValidator {
	return &HierarchyValidator{}
}

// HierarchyResult contains the results of hierarchy validation
type HierarchyResult struct {
	HasCycles  bool
	CyclePaths [][]string
	Unresolved []string // managers referenced but not present
}

// ValidateHierarchy validates employee -> manager references.
// Keys with an empty manager are roots.
func (v *HierarchyValidator) ValidateHierarchy(reportsTo map[string]string) *HierarchyResult {
	result := &HierarchyResult{
		CyclePaths: make([][]string, 0),
		Unresolved: make([]string, 0),
	}

	adjacencyMap := v.buildAdjacencyMap(reportsTo)

	unresolved := make(map[string]bool)
	for _, manager := range reportsTo {
		if manager == "" {
			continue
		}
		if _, exists := reportsTo[manager]; !exists {
			unresolved[manager] = true
		}
	}
	for manager := range unresolved {
		result.Unresolved = append(result.Unresolved, manager)
	}
	sort.Strings(result.Unresolved)

	result.CyclePaths = v.detectCycles(adjacencyMap)
	result.HasCycles = len(result.CyclePaths) > 0

	return result
}

// buildAdjacencyMap creates a map of employee -> manager edges
func (v *HierarchyValidator) buildAdjacencyMap(reportsTo map[string]string) map[string][]string {
	adjacencyMap := make(map[string][]string, len(reportsTo))
	for employee, manager := range reportsTo {
		if manager == "" {
			continue
		}
		adjacencyMap[employee] = append(adjacencyMap[employee], manager)
	}
	return adjacencyMap
}

// detectCycles uses DFS to find cycles in the reporting chain
func (v *HierarchyValidator) detectCycles(adjacencyMap map[string][]string) [][]string {
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)
	cycles := make([][]string, 0)

	// Sorted start order keeps the reported paths stable
	starts := make([]string, 0, len(adjacencyMap))
	for employee := range adjacencyMap {
		starts = append(starts, employee)
	}
	sort.Strings(starts)

	for _, employee := range starts {
		if !visited[employee] {
			v.dfsDetectCycle(employee, adjacencyMap, visited, recursionStack, nil, &cycles)
		}
	}

	return cycles
}

// dfsDetectCycle performs depth-first search to detect cycles
func (v *HierarchyValidator) dfsDetectCycle(
	current string,
	adjacencyMap map[string][]string,
	visited map[string]bool,
	recursionStack map[string]bool,
	path []string,
	cycles *[][]string,
) {
	visited[current] = true
	recursionStack[current] = true
	path = append(path, current)

	for _, manager := range adjacencyMap[current] {
		if !visited[manager] {
			v.dfsDetectCycle(manager, adjacencyMap, visited, recursionStack, path, cycles)
		} else if recursionStack[manager] {
			for i, employee := range path {
				if employee == manager {
					cycle := make([]string, 0, len(path)-i+1)
					cycle = append(cycle, path[i:]...)
					cycle = append(cycle, manager)
					*cycles = append(*cycles, cycle)
					break
				}
			}
		}
	}

	recursionStack[current] = false
}
