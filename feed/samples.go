package feed

import "github.com/rushteam/feedrank/core"

// SampleFollowing 是示例观看者关注的作者。
var SampleFollowing = []string{"alice", "bob"}

// SamplePosts 返回一组演示用候选 Post：两个关注作者（alice 两条、bob 一条），
// 以及两个未关注作者（其中 viral_account 有两条视频）。
func SamplePosts() []*core.Post {
	posts := []*core.Post{
		core.NewPost("1", "alice", "Just shipped a new feature! Thread on what we learned..."),
		core.NewPost("2", "alice", "Follow-up: here's the technical deep dive"),
		core.NewPost("3", "bob", "Hot take: tabs are better than spaces"),
		core.NewVideoPost("4", "viral_account", "This video will change how you think about productivity", 45),
		core.NewPost("5", "news_org", "Breaking: major announcement in tech industry"),
		core.NewVideoPost("6", "viral_account", "Another banger video for you", 120),
	}
	following := make(map[string]struct{}, len(SampleFollowing))
	for _, a := range SampleFollowing {
		following[a] = struct{}{}
	}
	for _, p := range posts {
		_, p.InNetwork = following[p.AuthorID]
	}
	return posts
}
