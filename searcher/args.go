package searcher

// Hyperparameters for MCTS

const DefaultCPuct = 5.0 // Exploration constant

const DefaultPlayouts = 10000 // Playouts per move

const DefaultGoroutines = 1 // Sequential playouts

// VisitEpsilon keeps log(visits) finite for unvisited children
const VisitEpsilon = 1e-10
