package progression

// Rules bundles the three static catalogs so they can be injected together.
type Rules struct {
	Levels  *LevelTable
	Tasks   *TaskCatalog
	Mentors *MentorCatalog
}

// Summarize runs the whole pipeline: points to level, completed task ids to
// per-type counts, counts to mentor statuses.
func (r Rules) Summarize(points int, completedTaskIDs []int64, unlocked []string) Summary {
	info := r.Levels.Resolve(points)
	byType := r.Tasks.AggregateByType(completedTaskIDs)
	params := UnlockParams{
		Level:           info.Current.Level,
		CompletedByType: byType,
		AlreadyUnlocked: unlocked,
	}
	return Summary{
		Points:          points,
		Level:           info,
		CompletedByType: byType,
		Mentors:         r.Mentors.Evaluate(params),
		NextMentor:      r.Mentors.NextToUnlock(params),
		NewUnlocks:      r.Mentors.CheckNewUnlocks(params),
	}
}

// Summary is the computed progression state of one user.
type Summary struct {
	Points          int              `json:"points"`
	Level           LevelInfo        `json:"level"`
	CompletedByType map[TaskType]int `json:"completedByType"`
	Mentors         []MentorStatus   `json:"mentors"`
	NextMentor      *MentorStatus    `json:"nextMentor,omitempty"`
	NewUnlocks      []Mentor         `json:"newUnlocks,omitempty"`
}

// DefaultRules returns the catalogs shipped with the product.
func DefaultRules() Rules {
	return Rules{
		Levels:  MustLevelTable(DefaultLevels()),
		Tasks:   MustTaskCatalog(DefaultTasks()),
		Mentors: MustMentorCatalog(DefaultMentors()),
	}
}

func DefaultLevels() []Level {
	return []Level{
		{Level: 1, Name: "新手探险家", MinPoints: 0, Icon: "🌱"},
		{Level: 2, Name: "好奇观察者", MinPoints: 300, Icon: "🔍"},
		{Level: 3, Name: "小小实验家", MinPoints: 800, Icon: "🔬"},
		{Level: 4, Name: "创意发明者", MinPoints: 1500, Icon: "💡"},
		{Level: 5, Name: "项目领航员", MinPoints: 3000, Icon: "🚀"},
		{Level: 6, Name: "知识探索者", MinPoints: 5000, Icon: "🌟"},
		{Level: 7, Name: "成长导师", MinPoints: 8000, Icon: "🏆"},
		{Level: 8, Name: "未来领袖", MinPoints: 12000, Icon: "👑"},
	}
}

func DefaultTasks() []Task {
	return []Task{
		{
			ID: 1, Title: "观察一种昆虫", Icon: "🐛", Type: TaskHandsOn, Points: 100, Difficulty: 1,
			Description:  "找到一只昆虫（蚂蚁、蜜蜂、蝴蝶等），观察15分钟，记录它的行为和特点。",
			Requirements: []string{"观察时间不少于15分钟", "记录至少3个行为特点", "可以配合照片或手绘图"},
		},
		{
			ID: 2, Title: "采访家人", Icon: "🎤", Type: TaskSocial, Points: 80, Difficulty: 1,
			Description:  "采访爸爸或妈妈，了解他们的工作，记录3个最有趣的事情。",
			Requirements: []string{"准备至少5个问题", "记录完整的对话过程", "总结3个最有趣的发现"},
		},
		{
			ID: 3, Title: "读一本书", Icon: "📚", Type: TaskKnowledge, Points: 50, Difficulty: 1,
			Description:  "读完一本你感兴趣的书，分享最喜欢的3句话和为什么喜欢。",
			Requirements: []string{"完整读完一本书", "摘抄3句最喜欢的话", "写下喜欢的理由"},
		},
		{
			ID: 4, Title: "做个小实验", Icon: "🔬", Type: TaskHandsOn, Points: 120, Difficulty: 2,
			Description:  "用家里的材料做一个科学小实验（比如：火山爆发、浮力测试等）。",
			Requirements: []string{"准备实验材料清单", "记录实验步骤", "拍照或录像记录过程", "写下实验结果和感受"},
		},
		{
			ID: 5, Title: "写一首诗", Icon: "✍️", Type: TaskCreative, Points: 100, Difficulty: 2,
			Description:  "写一首小诗，可以关于自然、家人、梦想或任何你想表达的。",
			Requirements: []string{"不少于4行", "有自己的想法和感受", "可以不押韵，但要有意境"},
		},
		{
			ID: 6, Title: "设计一个游戏", Icon: "🎮", Type: TaskCreative, Points: 150, Difficulty: 2,
			Description:  "设计一个简单的游戏（可以是纸牌、棋类或户外游戏），写下规则。",
			Requirements: []string{"写清楚游戏规则", "说明需要几个人玩", "画出游戏道具或场地图", "最好能试玩一次"},
		},
		{
			ID: 7, Title: "社区调查", Icon: "📊", Type: TaskSocial, Points: 120, Difficulty: 2,
			Description:  "在小区里做一个小调查（比如：大家喜欢什么花？最想改善什么？）",
			Requirements: []string{"设计3-5个调查问题", "采访至少5个人", "整理调查结果", "写一份简单的报告"},
		},
		{
			ID: 8, Title: "学习一项新技能", Icon: "🎯", Type: TaskKnowledge, Points: 200, Difficulty: 3,
			Description:  "花一周时间学习一项新技能（折纸、魔方、简单编程等），记录学习过程。",
			Requirements: []string{"选择一项新技能", "坚持练习至少7天", "记录每天的进步", "最后展示学习成果"},
		},
	}
}

func DefaultMentors() []Mentor {
	return []Mentor{
		{
			ID: "davinci", Name: "达芬奇教授", Title: "Prof. Da Vinci", Icon: "🔬",
			Description: "创意与发明的引路人。擅长激发你的想象力，帮你把脑海中的点子变成现实。",
			Dimensions:  []string{"creative", "practical"},
			Condition:   UnlockCondition{Type: ConditionTasksCompleted, Value: 3, TaskTypes: []TaskType{TaskCreative, TaskHandsOn}},
		},
		{
			ID: "magellan", Name: "探险家麦哲伦", Title: "Explorer Magellan", Icon: "🌍",
			Description: "勇气与探索的伙伴。鼓励你走出舒适区，发现世界的精彩。",
			Dimensions:  []string{"physical"},
			Condition:   UnlockCondition{Type: ConditionLevel, Value: 2},
		},
		{
			ID: "oliver", Name: "智慧猫头鹰奥利", Title: "Owl Oliver", Icon: "📚",
			Description: "知识与思考的导师。帮你建立深度思考的习惯，享受学习的乐趣。",
			Dimensions:  []string{"cognitive"},
			Condition:   UnlockCondition{Type: ConditionTasksCompleted, Value: 3, TaskTypes: []TaskType{TaskKnowledge}},
		},
		{
			ID: "bridge", Name: "友谊大使小桥", Title: "Bridge", Icon: "🤝",
			Description: "社交与情感的守护者。帮你理解自己和他人的感受，建立真诚的友谊。",
			Dimensions:  []string{"social", "emotional"},
			Condition:   UnlockCondition{Type: ConditionTasksCompleted, Value: 2, TaskTypes: []TaskType{TaskSocial}},
		},
		{
			ID: "star", Name: "未来队长星辰", Title: "Captain Star", Icon: "🚀",
			Description: "领导力与目标的教练。帮你设定目标、制定计划、带领团队前进。",
			Dimensions:  []string{"leadership"},
			Condition:   UnlockCondition{Type: ConditionLevel, Value: 3},
		},
	}
}
