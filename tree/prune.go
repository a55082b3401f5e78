// Package tree - bookmark tree shape conversion and materialization
package tree

import "github.com/alwitt/alcove/models"

/*
Prune strip a live tree store node down to its minimal serializable shape

Store specific metadata is dropped; child array order is preserved and becomes
the only ordering information.

	@param node models.TreeNode - the live node, with children populated
	@return the pruned node
*/
func Prune(node models.TreeNode) models.PrunedNode {
	switch node.Kind {
	case models.NodeKindFolder:
		return models.PrunedNode{
			Kind:     models.NodeKindFolder,
			Title:    node.Title,
			Children: PruneChildren(node),
		}
	case models.NodeKindSeparator:
		return models.PrunedNode{Kind: models.NodeKindSeparator}
	default:
		return models.PrunedNode{Kind: models.NodeKindBookmark, Title: node.Title, URL: node.URL}
	}
}

/*
PruneChildren prune the direct children of a live node, in live order

	@param node models.TreeNode - the live node, with children populated
	@return pruned child list
*/
func PruneChildren(node models.TreeNode) []models.PrunedNode {
	result := []models.PrunedNode{}
	for _, child := range node.Children {
		result = append(result, Prune(child))
	}
	return result
}

/*
Size count the nodes within a pruned subtree, the subtree root included

Used to compute the denominator for materialization progress reporting.

	@param node models.PrunedNode - the subtree root
	@return node count
*/
func Size(node models.PrunedNode) int {
	total := 1
	for _, child := range node.Children {
		total += Size(child)
	}
	return total
}

/*
SizeOfList count the nodes within a list of pruned subtrees

	@param nodes []models.PrunedNode - the subtree roots
	@return node count
*/
func SizeOfList(nodes []models.PrunedNode) int {
	total := 0
	for _, node := range nodes {
		total += Size(node)
	}
	return total
}
