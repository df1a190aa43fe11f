package schedule

// problemLinks maps well-known practice problem names to their LeetCode URLs.
// Problems absent from the map render as bare names.
var problemLinks = map[string]string{
	"Two Sum":                                 "https://leetcode.com/problems/two-sum/",
	"Best Time to Buy and Sell Stock":         "https://leetcode.com/problems/best-time-to-buy-and-sell-stock/",
	"Contains Duplicate":                      "https://leetcode.com/problems/contains-duplicate/",
	"Product of Array Except Self":            "https://leetcode.com/problems/product-of-array-except-self/",
	"Maximum Subarray":                        "https://leetcode.com/problems/maximum-subarray/",
	"Valid Anagram":                           "https://leetcode.com/problems/valid-anagram/",
	"Valid Parentheses":                       "https://leetcode.com/problems/valid-parentheses/",
	"Longest Substring Without Repeating Characters": "https://leetcode.com/problems/longest-substring-without-repeating-characters/",
	"Reverse Linked List":                     "https://leetcode.com/problems/reverse-linked-list/",
	"Merge Two Sorted Lists":                  "https://leetcode.com/problems/merge-two-sorted-lists/",
	"Linked List Cycle":                       "https://leetcode.com/problems/linked-list-cycle/",
	"Binary Search":                           "https://leetcode.com/problems/binary-search/",
	"Search in Rotated Sorted Array":          "https://leetcode.com/problems/search-in-rotated-sorted-array/",
	"Maximum Depth of Binary Tree":            "https://leetcode.com/problems/maximum-depth-of-binary-tree/",
	"Invert Binary Tree":                      "https://leetcode.com/problems/invert-binary-tree/",
	"Validate Binary Search Tree":             "https://leetcode.com/problems/validate-binary-search-tree/",
	"Number of Islands":                       "https://leetcode.com/problems/number-of-islands/",
	"Clone Graph":                             "https://leetcode.com/problems/clone-graph/",
	"Climbing Stairs":                         "https://leetcode.com/problems/climbing-stairs/",
	"Coin Change":                             "https://leetcode.com/problems/coin-change/",
	"House Robber":                            "https://leetcode.com/problems/house-robber/",
	"Longest Increasing Subsequence":          "https://leetcode.com/problems/longest-increasing-subsequence/",
	"Merge Intervals":                         "https://leetcode.com/problems/merge-intervals/",
	"Top K Frequent Elements":                 "https://leetcode.com/problems/top-k-frequent-elements/",
	"Kth Largest Element in an Array":         "https://leetcode.com/problems/kth-largest-element-in-an-array/",
	"Word Break":                              "https://leetcode.com/problems/word-break/",
	"Course Schedule":                         "https://leetcode.com/problems/course-schedule/",
	"Trapping Rain Water":                     "https://leetcode.com/problems/trapping-rain-water/",
	"Median of Two Sorted Arrays":             "https://leetcode.com/problems/median-of-two-sorted-arrays/",
	"Serialize and Deserialize Binary Tree":   "https://leetcode.com/problems/serialize-and-deserialize-binary-tree/",
}

// ResolveLink returns the practice URL for a problem name, if known.
func ResolveLink(name string) (string, bool) {
	url, ok := problemLinks[name]
	return url, ok
}
