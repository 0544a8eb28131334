/*
Package gramr is a grammar analysis toolbox.

GRAMR loads context-free grammars and determines whether they are amenable to
deterministic bottom-up (SLR(1)) and/or top-down (LL(1)) parsing. It constructs
the corresponding parse tables and recognizes input token sequences against
them. Package structure is as follows:

■ lr: Package lr implements the grammar model, FIRST/FOLLOW computation, the
LR(0) characteristic finite state machine and SLR(1) parse tables.

■ lr/ll: Package ll derives an LL(1) predictive table from the same grammar
analysis and provides a predictive recognizer.

■ lr/slr: Package slr provides a table-driven shift-reduce recognizer.

■ lr/scanner: Package scanner feeds input token sequences to the recognizers.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gramr
