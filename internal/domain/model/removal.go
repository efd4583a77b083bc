package model

// 削除時の扱い。参照が残る行は消さずに非公開にする。
type RemovalAction string

const (
	RemovalDeactivate RemovalAction = "deactivate"
	RemovalHardDelete RemovalAction = "hard_delete"
)

// 依存（注文明細から参照される商品、商品を持つカテゴリなど）があれば
// ソフトデリート、なければ物理削除。
func DecideRemoval(hasDependents bool) RemovalAction {
	if hasDependents {
		return RemovalDeactivate
	}
	return RemovalHardDelete
}
