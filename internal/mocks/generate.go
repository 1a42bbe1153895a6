package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/tournament --output domain/tournament --outpkg tournamentmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/leaderboard --output domain/leaderboard --outpkg leaderboardmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ReplayFeed --dir ../usecase --output usecase --outpkg usecasemock --filename replay_feed_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name OutcomeRepository --dir ../usecase --output usecase --outpkg usecasemock --filename outcome_repository_mock.go
