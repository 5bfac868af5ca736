// Package store 提供 core.Store 的实现。
//
// 接口定义在 core 包。Redis 的连接与读写失败统一返回 store 模块的 UNAVAILABLE，
// key 不存在返回 core.ErrStoreNotFound。
//
//	var s core.Store = store.NewMemoryStore()
//	r, err := store.NewRedisStore(ctx, "localhost:6379", 0)
package store
